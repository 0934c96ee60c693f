// Package match reconciles the two per-edition source feeds (official
// registry and IMDb catalog) into canonical nomination records.
//
// Matching proceeds top-down: categories are paired first (static table,
// then curated edge cases, then fuzzy similarity over normalized labels),
// nominees within each paired category are paired next (winners separately
// from non-winners, scored on summed film-title and people-statement
// similarity), and finally every person, company, country, and film mention
// in a paired nominee is resolved to its stable external identifier.
//
// Every bijection step fails loudly on ambiguity: an unmatched or contested
// entry aborts the edition with an AmbiguityError listing the offending
// items, so the fix lands in the override tables rather than in a guess.
package match
