// Package registry parses nomination data from the official awards database
// and the per-ceremony pages. The database export is one large HTML document
// covering every ceremony; each edition's categories are parsed out of it by
// position. The per-ceremony pages cover a single year and are the only
// source for a ceremony whose results are not yet in the database, plus the
// ceremony dates themselves.
package registry
