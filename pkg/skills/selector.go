package skills

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// MaxSelected is the most skills Select returns
const MaxSelected = 3

// Selector picks the skills relevant to a product and query
type Selector struct {
	tables *Tables
}

// NewSelector creates a selector; nil tables means the embedded defaults
func NewSelector(tables *Tables) *Selector {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Selector{tables: tables}
}

// Tables returns the selector's tables
func (s *Selector) Tables() *Tables {
	return s.tables
}

type scoredSkill struct {
	name  string
	score int
}

// Select returns up to three skill names.
// Explicit names are returned verbatim. Otherwise skills whose trigger keywords
// appear in the query come first, highest score first, and the product defaults
// fill the remaining slots.
func (s *Selector) Select(product, query string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}

	defaults := s.tables.Defaults(product)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return head(defaults, MaxSelected)
	}

	detected := s.detect(q)

	selected := make([]string, 0, MaxSelected)
	seen := make(map[string]bool)
	for _, name := range append(detected, defaults...) {
		if seen[name] {
			continue
		}
		seen[name] = true
		selected = append(selected, name)
		if len(selected) == MaxSelected {
			break
		}
	}

	log.Debug().
		Str("product", product).
		Strs("detected", detected).
		Strs("selected", selected).
		Msg("Skills selected")

	return selected
}

// detect scores every trigger entry against a lowercased query
func (s *Selector) detect(q string) []string {
	var scored []scoredSkill
	for _, trig := range s.tables.Triggers {
		score := 0
		for _, kw := range trig.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, scoredSkill{name: trig.Skill, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	names := make([]string, len(scored))
	for i, sk := range scored {
		names[i] = sk.name
	}
	return names
}

func head(names []string, n int) []string {
	if len(names) > n {
		names = names[:n]
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}
