// Package providers contains the reference tool providers loaded into the catalog.
//
// utilities and compliance need no external resources and survive the
// fallback-default tier; memory needs its sqlite database and only loads in the
// full tier.
package providers
