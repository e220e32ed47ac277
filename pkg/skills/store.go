package skills

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	skillExt      = ".md"
	skillDocument = "SKILL.md"
)

// Store resolves skill documents under a root directory
type Store struct {
	root string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory
func (s *Store) Root() string {
	return s.root
}

// Categories lists the category directories in enumeration order (sorted by name).
// A missing root yields no categories.
func (s *Store) Categories() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read skill root: %w", err)
	}

	var categories []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			categories = append(categories, e.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Find scans categories in enumeration order and returns the first document named name.
// When two categories hold the same name the earlier category wins.
func (s *Store) Find(name string) (Skill, error) {
	if err := validateName(name); err != nil {
		return Skill{}, err
	}

	categories, err := s.Categories()
	if err != nil {
		return Skill{}, err
	}

	for _, category := range categories {
		if path, ok := s.documentPath(category, name); ok {
			return Skill{Name: name, Category: category, Path: path}, nil
		}
	}
	return Skill{}, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
}

// Get resolves a skill by its (category, name) identity
func (s *Store) Get(category, name string) (Skill, error) {
	if err := validateName(category); err != nil {
		return Skill{}, err
	}
	if err := validateName(name); err != nil {
		return Skill{}, err
	}
	if path, ok := s.documentPath(category, name); ok {
		return Skill{Name: name, Category: category, Path: path}, nil
	}
	return Skill{}, fmt.Errorf("%w: %s/%s", ErrSkillNotFound, category, name)
}

// List returns every skill, ordered by category then name
func (s *Store) List() ([]Skill, error) {
	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}

	var skills []Skill
	for _, category := range categories {
		entries, err := os.ReadDir(filepath.Join(s.root, category))
		if err != nil {
			return nil, fmt.Errorf("failed to read category %s: %w", category, err)
		}

		var names []string
		for _, e := range entries {
			switch {
			case strings.HasPrefix(e.Name(), "."):
			case e.IsDir():
				if _, ok := s.documentPath(category, e.Name()); ok {
					names = append(names, e.Name())
				}
			case strings.HasSuffix(e.Name(), skillExt):
				names = append(names, strings.TrimSuffix(e.Name(), skillExt))
			}
		}
		sort.Strings(names)

		for i, name := range names {
			if i > 0 && names[i-1] == name {
				continue
			}
			path, _ := s.documentPath(category, name)
			skills = append(skills, Skill{Name: name, Category: category, Path: path})
		}
	}
	return skills, nil
}

// Read returns a skill's document content
func (s *Store) Read(skill Skill) (string, error) {
	data, err := os.ReadFile(skill.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read skill %s: %w", skill.Name, err)
	}
	return string(data), nil
}

// documentPath prefers <category>/<name>.md over <category>/<name>/SKILL.md
func (s *Store) documentPath(category, name string) (string, bool) {
	candidates := []string{
		filepath.Join(s.root, category, name+skillExt),
		filepath.Join(s.root, category, name, skillDocument),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// NameFromPath maps a document path back to its skill name and category.
// It reports false for paths that are not skill documents under the root.
func (s *Store) NameFromPath(path string) (category, name string, ok bool) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if parts[0] == ".." || parts[0] == "." {
		return "", "", false
	}

	switch {
	case len(parts) == 2 && strings.HasSuffix(parts[1], skillExt):
		return parts[0], strings.TrimSuffix(parts[1], skillExt), true
	case len(parts) == 3 && parts[2] == skillDocument:
		return parts[0], parts[1], true
	case len(parts) == 2:
		// a skill directory itself was created, renamed or removed
		return parts[0], parts[1], parts[1] != ""
	}
	return "", "", false
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" ||
		name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) ||
		strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidSkillName, name)
	}
	return nil
}
