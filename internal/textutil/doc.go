// Package textutil provides the string similarity scorers used by the
// matching pipeline.
//
// Scores are on a 0..100 scale so that independent matrices (film titles,
// people statements) can be summed element-wise before resolution:
//   - Ratio: normalized edit-distance similarity over whole strings
//   - TokenSetRatio: order-insensitive similarity over unique tokens
//
// Fold converts text to a comparison form (lowercased, diacritics removed)
// so that differently-accented spellings of the same name still score as
// near-identical.
package textutil
