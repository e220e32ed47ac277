package skills

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithRecorder sets the metrics recorder
func WithRecorder(rec Recorder) LoaderOption {
	return func(l *Loader) { l.recorder = rec }
}

// Loader reads skill documents within token budgets and caches full contents
type Loader struct {
	store    *Store
	cache    *contentCache
	recorder Recorder
}

// NewLoader creates a loader reading from store
func NewLoader(store *Store, opts ...LoaderOption) *Loader {
	l := &Loader{
		store: store,
		cache: newContentCache(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Store returns the loader's store
func (l *Loader) Store() *Store {
	return l.store
}

// LoadBudgeted loads names in order and admits each skill only while the running
// token total stays within maxTokens. A skill that does not fit in full is
// compressed; one that still does not fit is skipped. Missing skills are skipped.
func (l *Loader) LoadBudgeted(names []string, maxTokens int) []SkillContent {
	admitted := []SkillContent{}
	used := 0

	for _, name := range names {
		remaining := maxTokens - used

		if cached, ok := l.cache.Get(name); ok {
			if cached.TokenCount > remaining {
				l.skip(name, SkipOverBudget, cached.TokenCount, remaining)
				continue
			}
			admitted = append(admitted, cached)
			used += cached.TokenCount
			l.admit(cached)
			continue
		}

		full, err := l.read(name)
		if err != nil {
			reason := SkipReadError
			if errors.Is(err, ErrSkillNotFound) || errors.Is(err, ErrInvalidSkillName) {
				reason = SkipNotFound
			}
			log.Warn().Str("skill", name).Err(err).Msg("Skipping skill")
			l.observeSkip(reason)
			continue
		}

		if full.TokenCount <= remaining {
			l.cache.Set(name, full)
			admitted = append(admitted, full)
			used += full.TokenCount
			l.admit(full)
			continue
		}

		compressed := compressToBudget(full, remaining)
		if compressed.TokenCount > remaining {
			l.skip(name, SkipOverBudget, compressed.TokenCount, remaining)
			continue
		}

		log.Debug().
			Str("skill", name).
			Int("full_tokens", full.TokenCount).
			Int("tokens", compressed.TokenCount).
			Msg("Admitted compressed skill")
		admitted = append(admitted, compressed)
		used += compressed.TokenCount
		l.admit(compressed)
	}

	log.Debug().
		Int("requested", len(names)).
		Int("admitted", len(admitted)).
		Int("tokens", used).
		Int("max_tokens", maxTokens).
		Msg("Skills loaded")

	return admitted
}

// Load returns one skill's full content, from the cache when present
func (l *Loader) Load(name string) (SkillContent, error) {
	if cached, ok := l.cache.Get(name); ok {
		return cached, nil
	}
	content, err := l.read(name)
	if err != nil {
		return SkillContent{}, err
	}
	l.cache.Set(name, content)
	return content, nil
}

// Invalidate drops one cached skill and reports whether it was cached
func (l *Loader) Invalidate(name string) bool {
	removed := l.cache.Delete(name)
	if removed {
		log.Debug().Str("skill", name).Msg("Skill cache entry invalidated")
	}
	return removed
}

// ClearCache drops every cached skill
func (l *Loader) ClearCache() {
	size := l.cache.Size()
	l.cache.Clear()
	log.Info().Int("entries", size).Msg("Skill cache cleared")
}

// CacheSize returns the number of cached skills
func (l *Loader) CacheSize() int {
	return l.cache.Size()
}

func (l *Loader) read(name string) (SkillContent, error) {
	skill, err := l.store.Find(name)
	if err != nil {
		return SkillContent{}, err
	}
	text, err := l.store.Read(skill)
	if err != nil {
		return SkillContent{}, err
	}
	return SkillContent{
		Name:       skill.Name,
		Category:   skill.Category,
		Content:    text,
		TokenCount: EstimateTokens(text),
	}, nil
}

// compressToBudget keeps the allow-listed sections and, if that is still over
// remaining, only the first lines of them
func compressToBudget(full SkillContent, remaining int) SkillContent {
	text := Compress(full.Content)
	if EstimateTokens(text) > remaining {
		text = Truncate(text, compressLineLimit)
	}
	return SkillContent{
		Name:       full.Name,
		Category:   full.Category,
		Content:    text,
		TokenCount: EstimateTokens(text),
		Compressed: true,
	}
}

func (l *Loader) admit(content SkillContent) {
	if l.recorder != nil {
		l.recorder.ObserveSkillAdmitted(content.TokenCount, content.Compressed)
	}
}

func (l *Loader) skip(name, reason string, tokens, remaining int) {
	log.Debug().
		Str("skill", name).
		Int("tokens", tokens).
		Int("remaining", remaining).
		Msg("Skill does not fit the token budget")
	l.observeSkip(reason)
}

func (l *Loader) observeSkip(reason string) {
	if l.recorder != nil {
		l.recorder.ObserveSkillSkipped(reason)
	}
}
