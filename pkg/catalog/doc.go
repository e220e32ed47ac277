// Package catalog builds the tool catalog from providers with a tiered fallback.
//
// Tiers are tried in order until one yields tools:
//
//	full              every provider, including ones that need a database or other resources
//	fallback-default  only providers that need no external resources
//	fallback-static   the embedded static catalog, so the registry is never empty
//
// Provider metadata is normalized on the way in: parameters declared as a JSON
// array or as a name-keyed JSON object both become an ordered parameter list, and
// tools without a declared category are classified by name.
package catalog
