package skills

import "sync"

// contentCache holds full skill contents by name. It is unbounded; entries stay
// until Delete or Clear.
type contentCache struct {
	mu      sync.RWMutex
	entries map[string]SkillContent
}

func newContentCache() *contentCache {
	return &contentCache{
		entries: make(map[string]SkillContent),
	}
}

func (c *contentCache) Set(name string, content SkillContent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = content
}

func (c *contentCache) Get(name string) (SkillContent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	content, ok := c.entries[name]
	return content, ok
}

func (c *contentCache) Delete(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[name]
	if ok {
		delete(c.entries, name)
	}
	return ok
}

func (c *contentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]SkillContent)
}

func (c *contentCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
