package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"storefront/cart"

	"github.com/shopspring/decimal"
)

// record is the stored shape of one cart line.
type record struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Image    string      `json:"image,omitempty"`
	Image2   string      `json:"image2,omitempty"`
	Image3   string      `json:"image3,omitempty"`
}

// EncodeItems renders items as the stored JSON array.
func EncodeItems(items []cart.CartItem) ([]byte, error) {
	records := make([]record, 0, len(items))
	for _, it := range items {
		rec := record{
			ID:       it.ID,
			Title:    it.Title,
			Price:    json.Number(it.Price.String()),
			Quantity: it.Quantity,
		}
		for idx, img := range it.Images {
			switch idx {
			case 0:
				rec.Image = img
			case 1:
				rec.Image2 = img
			case 2:
				rec.Image3 = img
			}
		}
		records = append(records, rec)
	}

	body, err := json.Marshal(records)
	if err != nil {
		return nil, CorruptError("encode", err)
	}
	return body, nil
}

// DecodeResult is what DecodeItems could recover from a stored record.
type DecodeResult struct {
	Items []cart.CartItem
	// Dropped counts lines skipped for a missing or invalid id, title or price,
	// or for repeating an earlier id.
	Dropped int
}

// DecodeItems parses a stored record leniently. Only a body that is not a JSON
// array at all is an error; malformed lines are dropped one by one.
func DecodeItems(body []byte, up *Upcaster) (DecodeResult, error) {
	var result DecodeResult

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return result, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return result, CorruptError("decode", err)
	}

	lines := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			result.Dropped++
			continue
		}
		lines = append(lines, obj)
	}
	if up != nil {
		lines = up.Upcast(lines)
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		item, ok := itemFromRaw(line)
		if !ok {
			result.Dropped++
			continue
		}
		if _, dup := seen[item.ID]; dup {
			result.Dropped++
			continue
		}
		seen[item.ID] = struct{}{}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func itemFromRaw(line map[string]any) (cart.CartItem, bool) {
	id := asString(line["id"])
	title := asString(line["title"])
	if id == "" || title == "" {
		return cart.CartItem{}, false
	}

	price, err := asDecimal(line["price"])
	if err != nil || price.IsNegative() {
		return cart.CartItem{}, false
	}

	item := cart.CartItem{
		ID:       id,
		Title:    title,
		Price:    price,
		Quantity: asQuantity(line["quantity"]),
	}
	for _, field := range imageFields {
		if img := asString(line[field]); img != "" {
			item.Images = append(item.Images, img)
		}
	}
	return item, true
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

var errNoPrice = errors.New("price missing")

func asDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	default:
		return decimal.Zero, errNoPrice
	}
}

// asQuantity reads a stored quantity, falling back to 1 for anything missing,
// fractional-below-one or non-numeric.
func asQuantity(v any) int {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 1
		}
		f = parsed
	case string:
		parsed, err := json.Number(strings.TrimSpace(t)).Float64()
		if err != nil {
			return 1
		}
		f = parsed
	default:
		return 1
	}
	if math.IsNaN(f) || f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
