package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the catalog from a YAML file, or the built-in default when
// path is empty. A YAML list preserves order, so file catalogs keep stable
// menus the same way the default does.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a spot catalog from a YAML file.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	var spots []Spot
	if err := yaml.Unmarshal(data, &spots); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog file: %w", err)
	}

	if err := validate(spots); err != nil {
		return Catalog{}, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return New(spots), nil
}

func validate(spots []Spot) error {
	if len(spots) == 0 {
		return errors.New("no spots defined")
	}
	seen := make(map[string]bool, len(spots))
	for _, s := range spots {
		if s.Key == "" || s.Name == "" {
			return fmt.Errorf("spot %q: key and name are required", s.Key)
		}
		if seen[s.Key] {
			return fmt.Errorf("duplicate spot key %q", s.Key)
		}
		seen[s.Key] = true

		if len(s.Beaches) == 0 {
			return fmt.Errorf("spot %q: at least one beach is required", s.Key)
		}
		beachSeen := make(map[string]bool, len(s.Beaches))
		for _, b := range s.Beaches {
			if b.Key == "" || b.Name == "" {
				return fmt.Errorf("spot %q: beach key and name are required", s.Key)
			}
			if beachSeen[b.Key] {
				return fmt.Errorf("spot %q: duplicate beach key %q", s.Key, b.Key)
			}
			beachSeen[b.Key] = true
		}
	}
	return nil
}
