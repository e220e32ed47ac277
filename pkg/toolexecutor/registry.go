package toolexecutor

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

type registeredTool struct {
	def    *ToolDefinition
	schema *gojsonschema.Schema
	seq    uint64
}

// Registry holds tool definitions keyed by name.
// The category index is derived from the name→category side map on every read,
// so re-registering a tool under another category cannot leave a stale entry.
type Registry struct {
	mu         sync.RWMutex
	tools      map[string]*registeredTool
	categories map[string]ToolCategory
	seq        uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tools:      make(map[string]*registeredTool),
		categories: make(map[string]ToolCategory),
	}
}

// Register adds or replaces a tool. An explicit category overrides def.Category.
// Tools with an unrecognized category are registered by name but not indexed.
func (r *Registry) Register(def ToolDefinition, category ...string) error {
	if err := validateToolDefinition(def); err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}

	effective := def.Category
	if len(category) > 0 && strings.TrimSpace(category[0]) != "" {
		effective = category[0]
	}
	def.Category = strings.TrimSpace(effective)
	bucket := bucketKey(def.Category)

	schema, err := generateJSONSchema(def)
	if err != nil {
		return fmt.Errorf("failed to generate schema for %s: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.tools[def.Name]
	seq := r.nextSeq()
	if existed && bucketKey(prev.def.Category) == bucket {
		// Same bucket: keep the original position
		seq = prev.seq
	}

	r.tools[def.Name] = &registeredTool{def: &def, schema: schema, seq: seq}
	if IsValidCategory(bucket) {
		r.categories[def.Name] = ToolCategory(bucket)
	} else {
		delete(r.categories, def.Name)
	}

	if existed {
		log.Debug().Str("tool", def.Name).Str("category", def.Category).Msg("Tool re-registered")
	} else {
		log.Debug().Str("tool", def.Name).Str("category", def.Category).Msg("Tool registered")
	}

	return nil
}

// bucketKey is the case-insensitive index key of a declared category
func bucketKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func (r *Registry) nextSeq() uint64 {
	r.seq++
	return r.seq
}

// Get returns a tool definition by name
func (r *Registry) Get(name string) (*ToolDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return tool.def, true
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Count returns the number of registered tools
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// GetAll returns every registered definition. Callers must not rely on the order.
func (r *Registry) GetAll() []*ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// GetByCategory returns the tools indexed under category in registration order
func (r *Registry) GetByCategory(category string) []*ToolDefinition {
	cat := ToolCategory(strings.ToLower(strings.TrimSpace(category)))

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*registeredTool{}
	for name, c := range r.categories {
		if c != cat {
			continue
		}
		tool, ok := r.tools[name]
		if !ok {
			continue
		}
		matched = append(matched, tool)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	defs := make([]*ToolDefinition, 0, len(matched))
	for _, tool := range matched {
		defs = append(defs, tool.def)
	}
	return defs
}

// Categories returns every recognized category with its tool count, in priority order
func (r *Registry) Categories() []CategoryCount {
	r.mu.RLock()
	counts := make(map[ToolCategory]int)
	for name, c := range r.categories {
		if _, ok := r.tools[name]; ok {
			counts[c]++
		}
	}
	r.mu.RUnlock()

	out := make([]CategoryCount, 0, len(AllCategories()))
	for _, c := range AllCategories() {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// Search returns tools whose name or description contains query (case-insensitive),
// optionally restricted to a category. An empty query matches everything.
func (r *Registry) Search(query, category string) []*ToolDefinition {
	var candidates []*ToolDefinition
	if strings.TrimSpace(category) != "" {
		candidates = r.GetByCategory(category)
	} else {
		candidates = r.GetAll()
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return candidates
	}

	out := []*ToolDefinition{}
	for _, def := range candidates {
		if strings.Contains(strings.ToLower(def.Name), q) ||
			strings.Contains(strings.ToLower(def.Description), q) {
			out = append(out, def)
		}
	}
	return out
}

// GetToolDefinitions returns the machine-callable descriptor of every tool, sorted by name
func (r *Registry) GetToolDefinitions() []ToolDescriptor {
	defs := r.GetAll()
	out := make([]ToolDescriptor, 0, len(defs))
	for _, def := range defs {
		out = append(out, Describe(*def))
	}
	return out
}

func (r *Registry) lookup(name string) (*registeredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// validateToolDefinition validates a tool definition
func validateToolDefinition(def ToolDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil for %s", def.Name)
	}

	seen := make(map[string]bool, len(def.Parameters))
	for _, param := range def.Parameters {
		if param.Name == "" {
			return fmt.Errorf("parameter name cannot be empty for %s", def.Name)
		}
		if seen[param.Name] {
			return fmt.Errorf("duplicate parameter %s for %s", param.Name, def.Name)
		}
		seen[param.Name] = true

		if !validParameterTypes[param.Type] {
			return fmt.Errorf("invalid parameter type %s for %s", param.Type, param.Name)
		}
	}

	return nil
}

var validParameterTypes = map[string]bool{
	"string": true, "number": true, "boolean": true,
	"object": true, "array": true, "integer": true,
}
