package skills

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Trigger lists the keywords that activate a skill
type Trigger struct {
	Skill    string   `yaml:"skill"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds the selector's static data
type Tables struct {
	Default  []string            `yaml:"default"`
	Products map[string][]string `yaml:"products"`
	Triggers []Trigger           `yaml:"triggers"`
}

// DefaultTables returns the embedded tables
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded skill tables are invalid: %v", err))
	}
	return t
}

// LoadTables reads tables from a YAML file
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill tables: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes and validates YAML tables
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse skill tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Products == nil {
		t.Products = map[string][]string{}
	}
	return &t, nil
}

// Validate checks that every list entry is a non-empty string
func (t *Tables) Validate() error {
	if len(t.Default) == 0 {
		return fmt.Errorf("skill tables: default list is empty")
	}
	for _, name := range t.Default {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("skill tables: empty name in default list")
		}
	}
	for product, names := range t.Products {
		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("skill tables: empty name in product %s", product)
			}
		}
	}
	for i, trig := range t.Triggers {
		if strings.TrimSpace(trig.Skill) == "" {
			return fmt.Errorf("skill tables: trigger %d has no skill", i)
		}
		for _, kw := range trig.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("skill tables: empty keyword for %s", trig.Skill)
			}
		}
	}
	return nil
}

// Defaults returns a product's default skills, or the generic list for unknown products
func (t *Tables) Defaults(product string) []string {
	if names, ok := t.Products[strings.ToLower(strings.TrimSpace(product))]; ok && len(names) > 0 {
		return names
	}
	return t.Default
}
