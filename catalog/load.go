package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout.
type File struct {
	Products []ProductEntry `yaml:"products"`
}

// ProductEntry is one product as written in the catalog file. image is
// accepted alongside images for hand-written files.
type ProductEntry struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Price         Amount   `yaml:"price"`
	OriginalPrice Amount   `yaml:"originalPrice"`
	Image         string   `yaml:"image"`
	Images        []string `yaml:"images"`
}

// Amount is a price read from YAML without passing through float64.
type Amount struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a number", value.Line)
	}
	raw := strings.TrimSpace(value.Value)
	if raw == "" || value.Tag == "!!null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q: %w", value.Line, raw, err)
	}
	a.Decimal = d
	return nil
}

func (e ProductEntry) product() Product {
	images := make([]string, 0, len(e.Images)+1)
	if img := strings.TrimSpace(e.Image); img != "" {
		images = append(images, img)
	}
	for _, img := range e.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		images = nil
	}
	return Product{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Price:         e.Price.Decimal,
		OriginalPrice: e.OriginalPrice.Decimal,
		Images:        images,
	}
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	products := make([]Product, 0, len(f.Products))
	for _, e := range f.Products {
		products = append(products, e.product())
	}
	return New(products)
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault reads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}
