package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// statusCatalog is the YAML layout of a status catalogue file:
//
//	statuses:
//	  - id: st-booked
//	    name: Booked
//	    lifecycle: active
type statusCatalog struct {
	Statuses []struct {
		ID        string `yaml:"id"`
		Name      string `yaml:"name"`
		Lifecycle string `yaml:"lifecycle"`
		SortOrder *int   `yaml:"sort_order"`
	} `yaml:"statuses"`
}

// LoadStatusCatalog reads status definitions from a YAML file. Entries
// without an explicit sort_order keep file order.
func LoadStatusCatalog(path string) ([]models.StatusDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read status catalogue: %w", err)
	}

	var cat statusCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse status catalogue: %w", err)
	}

	defs := make([]models.StatusDefinition, 0, len(cat.Statuses))
	seen := make(map[string]bool)
	for i, entry := range cat.Statuses {
		def := models.StatusDefinition{
			ID:        strings.TrimSpace(entry.ID),
			Name:      strings.TrimSpace(entry.Name),
			Lifecycle: models.Lifecycle(strings.ToLower(strings.TrimSpace(entry.Lifecycle))),
			SortOrder: i + 1,
		}
		if entry.SortOrder != nil {
			def.SortOrder = *entry.SortOrder
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("status %d: %w", i+1, err)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("status %d: duplicate id %q", i+1, def.ID)
		}
		seen[def.ID] = true
		defs = append(defs, def)
	}

	return defs, nil
}
