package skills

import "strings"

// compressLineLimit bounds a compressed document that is still over budget
const compressLineLimit = 50

var keptSections = map[string]bool{
	"Overview":     true,
	"Usage":        true,
	"Examples":     true,
	"Key Patterns": true,
}

// Compress keeps the document's "# " title lines and every section whose heading
// title is exactly Overview, Usage, Examples or Key Patterns, at any heading level.
// A kept section runs until the next heading of the same or a higher level that
// is not itself kept; deeper headings stay inside it. Headings inside code fences
// are treated as text.
func Compress(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))

	keepLevel := 0 // level of the open kept section, 0 when none
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}

		if !inFence {
			if level, title, ok := heading(line); ok {
				switch {
				case keptSections[title]:
					keepLevel = level
					kept = append(kept, line)
				case keepLevel > 0 && level > keepLevel:
					kept = append(kept, line)
				default:
					keepLevel = 0
					if level == 1 {
						kept = append(kept, line)
					}
				}
				continue
			}
		}

		if keepLevel > 0 {
			kept = append(kept, line)
		}
	}

	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}

// Truncate keeps the first n lines of content
func Truncate(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n")
}

// heading parses an ATX markdown heading such as "## Usage"
func heading(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	title = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[level:]), "#"))
	return level, title, true
}
