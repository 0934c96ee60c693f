// Package pipeline orchestrates the reconciliation runs: it pulls the two
// nomination sources, applies the curated overrides, pairs and resolves every
// category through the matcher, and lands the canonical records in the store.
package pipeline
