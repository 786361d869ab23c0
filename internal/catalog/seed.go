package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/tabledine/internal/models"
)

// Writer is the storage capability Seed needs.
type Writer interface {
	UpsertMenuItem(ctx context.Context, item *models.MenuItem) error
}

// seedFile is the YAML layout of a menu seed file:
//
//	restaurant: cafe-blue
//	items:
//	  - id: latte
//	    name: Latte
//	    base_price: 3.20
//	    available: true
//	    option_groups: [...]
type seedFile struct {
	Restaurant string            `yaml:"restaurant"`
	Items      []models.MenuItem `yaml:"items"`
}

// LoadSeed reads a menu seed file. Items without an explicit restaurant inherit
// the file-level one.
func LoadSeed(path string) ([]models.MenuItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML.
func ParseSeed(data []byte) ([]models.MenuItem, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}

	for i := range f.Items {
		if f.Items[i].Restaurant == "" {
			f.Items[i].Restaurant = f.Restaurant
		}
		if err := Validate(&f.Items[i]); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", i, err)
		}
	}
	return f.Items, nil
}

// Seed upserts every item through w.
func Seed(ctx context.Context, w Writer, items []models.MenuItem) error {
	for i := range items {
		if err := w.UpsertMenuItem(ctx, &items[i]); err != nil {
			return fmt.Errorf("failed to seed %s/%s: %w", items[i].Restaurant, items[i].ID, err)
		}
	}
	slog.Info("Menu seeded", "items", len(items))
	return nil
}
