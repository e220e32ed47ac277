package skills

import (
	"errors"
	"fmt"
)

var (
	// ErrSkillNotFound is returned when no category holds a document for the name
	ErrSkillNotFound = errors.New("skill not found")

	// ErrInvalidSkillName is returned for names that could escape the skill root
	ErrInvalidSkillName = errors.New("invalid skill name")
)

// Skill identifies a skill document on disk
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Path     string `json:"path"`
}

// SkillContent is a loaded skill document
type SkillContent struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Content    string `json:"content"`
	TokenCount int    `json:"token_count"`
	Compressed bool   `json:"compressed,omitempty"`
}

// Skip reasons reported to the Recorder
const (
	SkipNotFound   = "not_found"
	SkipOverBudget = "over_budget"
	SkipReadError  = "read_error"
)

// Recorder receives loader observations
type Recorder interface {
	ObserveSkillAdmitted(tokens int, compressed bool)
	ObserveSkillSkipped(reason string)
}

// String formats the entry for CLI and log output
func (c SkillContent) String() string {
	kind := "full"
	if c.Compressed {
		kind = "compressed"
	}
	return fmt.Sprintf("%s/%s (%d tokens, %s)", c.Category, c.Name, c.TokenCount, kind)
}
