// Package parse decodes GFF buffers into ir trees.
//
// Every region is bounds checked against the buffer and every index
// against its table, so malformed or truncated input yields an
// *ir.Error instead of a wrong tree. Struct cycles and excessive
// nesting are rejected.
package parse
