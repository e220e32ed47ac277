package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()

	assert.NotEmpty(t, tables.Default)
	assert.GreaterOrEqual(t, len(tables.Products["wowtruck"]), 3)
	assert.Contains(t, tables.Products, "saathi")
	require.NotEmpty(t, tables.Triggers)
}

func TestSelect_EmptyQueryReturnsFirstThreeDefaults(t *testing.T) {
	s := NewSelector(nil)
	want := s.Tables().Products["wowtruck"][:3]

	assert.Equal(t, want, s.Select("wowtruck", "", nil))
	assert.Equal(t, want, s.Select("wowtruck", "   ", nil))
}

func TestSelect_KeywordOutranksDefaults(t *testing.T) {
	s := NewSelector(nil)

	got := s.Select("saathi", "remember my last shipment", nil)

	require.Len(t, got, 3)
	assert.Equal(t, "ankr-eon-memory", got[0])
	assert.Contains(t, got, "ankr-logistics-rag")
}

func TestSelect_ExplicitNamesVerbatim(t *testing.T) {
	s := NewSelector(nil)
	explicit := []string{"a", "b", "c", "d", "a"}

	assert.Equal(t, explicit, s.Select("wowtruck", "remember", explicit))
}

func TestSelect_UnknownProductUsesGenericDefaults(t *testing.T) {
	s := NewSelector(nil)

	assert.Equal(t, head(s.Tables().Default, 3), s.Select("unknown-product", "", nil))
}

func TestSelect_Scoring(t *testing.T) {
	tables := &Tables{
		Default: []string{"d1", "d2", "d3"},
		Triggers: []Trigger{
			{Skill: "one", Keywords: []string{"alpha"}},
			{Skill: "two", Keywords: []string{"alpha", "beta"}},
			{Skill: "tie", Keywords: []string{"gamma"}},
			{Skill: "d1", Keywords: []string{"delta"}},
		},
	}
	s := NewSelector(tables)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"higher score first", "ALPHA and beta", []string{"two", "one", "d1"}},
		{"ties keep declaration order", "gamma alpha", []string{"one", "two", "tie"}},
		{"no match pads with defaults", "nothing here", []string{"d1", "d2", "d3"}},
		{"detected default is not repeated", "delta", []string{"d1", "d2", "d3"}},
		{"truncated to three", "alpha beta gamma delta", []string{"two", "one", "tie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Select("", tt.query, nil))
		})
	}
}

func TestParseTables(t *testing.T) {
	data := []byte(`
default: [a, b]
products:
  acme: [x, y, z, w]
triggers:
  - skill: x
    keywords: [foo]
`)
	tables, err := ParseTables(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z", "w"}, tables.Defaults("ACME"))
	assert.Equal(t, []string{"a", "b"}, tables.Defaults("other"))

	_, err = ParseTables([]byte(`default: []`))
	assert.Error(t, err)

	_, err = ParseTables([]byte(`default: [a]
triggers:
  - keywords: [foo]`))
	assert.Error(t, err)

	_, err = ParseTables([]byte(`default: [a`))
	assert.Error(t, err)
}

func TestLoadTables(t *testing.T) {
	root := writeSkills(t, map[string]string{"tables.yaml": "default: [only]\n"})

	tables, err := LoadTables(root + "/tables.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, tables.Default)

	_, err = LoadTables(root + "/missing.yaml")
	assert.Error(t, err)
}
