// Package award defines the domain records shared across the ingestion
// pipeline: the per-source nominee shapes produced by the adapters, and the
// canonical matched records handed to the store.
package award
