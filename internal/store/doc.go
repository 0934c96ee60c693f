// Package store persists reconciled nominations in SQLite.
//
// It owns the schema (editions, three-level category hierarchy, titles,
// entities, and nominee link tables), seeds the category hierarchy from an
// embedded resource, upserts titles and entities by their external catalog
// id, and serves the read queries behind the HTTP API and the CSV export.
package store
