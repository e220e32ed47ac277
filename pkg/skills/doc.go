// Package skills selects and loads skill documents for model context.
//
// A skill is a markdown document stored under <root>/<category>/<name>.md or
// <root>/<category>/<name>/SKILL.md. The Selector picks at most three skill
// names for a product and a user query; the Loader reads them within a token
// budget, compressing documents that do not fit and caching full ones.
package skills
