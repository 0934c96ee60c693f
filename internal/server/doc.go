// Package server exposes the reconciled dataset over a read-only HTTP API:
// ceremonies, the category hierarchy, filterable nominations, title and
// entity profiles, and text search.
package server
