package storage

import "strings"

// RecordHandler transforms one raw stored line into a newer shape.
type RecordHandler func(rec map[string]any) map[string]any

// Upcaster rewrites legacy record shapes before they are decoded.
//
// A handler runs when its trigger field is present on the record. Records
// without any trigger field pass through unchanged. Handlers run in
// registration order and each sees the output of the previous one.
//
// Example:
//
//	up := NewUpcaster().
//	    On("qty", RenameField("qty", "quantity")).
//	    On("images", SplitImages)
//
//	records = up.Upcast(records)
type Upcaster struct {
	handlers []upcasterEntry
}

type upcasterEntry struct {
	field   string
	handler RecordHandler
}

// NewUpcaster creates an upcaster with no handlers.
func NewUpcaster() *Upcaster {
	return &Upcaster{handlers: make([]upcasterEntry, 0)}
}

// DefaultUpcaster handles every legacy line shape the storefront has written.
func DefaultUpcaster() *Upcaster {
	return NewUpcaster().
		On("qty", RenameField("qty", "quantity")).
		On("name", RenameField("name", "title")).
		On("images", SplitImages)
}

// On registers handler for records carrying field.
func (u *Upcaster) On(field string, handler RecordHandler) *Upcaster {
	u.handlers = append(u.handlers, upcasterEntry{field: field, handler: handler})
	return u
}

// Upcast transforms records to the current shape. The input maps are not
// modified.
func (u *Upcaster) Upcast(records []map[string]any) []map[string]any {
	result := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		result = append(result, u.upcastOne(rec))
	}
	return result
}

func (u *Upcaster) upcastOne(rec map[string]any) map[string]any {
	if rec == nil {
		return nil
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, entry := range u.handlers {
		if _, ok := out[entry.field]; ok {
			out = entry.handler(out)
		}
	}
	return out
}

// RenameField moves from to to unless to is already set. from is always
// removed.
func RenameField(from, to string) RecordHandler {
	return func(rec map[string]any) map[string]any {
		if _, exists := rec[to]; !exists {
			rec[to] = rec[from]
		}
		delete(rec, from)
		return rec
	}
}

var imageFields = [...]string{"image", "image2", "image3"}

// SplitImages spreads a legacy images array over image, image2 and image3.
// Slots that are already set win.
func SplitImages(rec map[string]any) map[string]any {
	list, _ := rec["images"].([]any)
	delete(rec, "images")

	slot := 0
	for _, v := range list {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		for slot < len(imageFields) {
			if _, taken := rec[imageFields[slot]]; !taken {
				break
			}
			slot++
		}
		if slot == len(imageFields) {
			break
		}
		rec[imageFields[slot]] = s
		slot++
	}
	return rec
}
