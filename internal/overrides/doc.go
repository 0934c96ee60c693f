// Package overrides patches known defects in the two nomination sources
// before matching. Both the official registry and the IMDb event catalog
// carry historical errors: broken markup, stale titles, credits attached to
// the wrong nominee, and split entries for ceremonies that listed one
// nomination across several rows. Every correction lives in an embedded
// catalog keyed by edition and position; the code applies them in a fixed
// stage order and never invents data of its own.
package overrides
