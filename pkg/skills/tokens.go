package skills

import "unicode/utf8"

// EstimateTokens approximates a token count as ceil(characters / 4).
// It is a budgeting heuristic, not a model tokenizer.
func EstimateTokens(content string) int {
	return (utf8.RuneCountInString(content) + 3) / 4
}
