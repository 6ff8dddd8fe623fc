// Package encode writes ir trees in the GFF binary layout and renders
// them as flat text listings.
//
// Encode, Bytes and EncodeStruct validate the whole tree first, so a
// failed call never produces partial output. The writer lays out the
// struct table, field table, deduplicated labels, field data, field
// indices and list indices back to back after the 56-byte header.
//
// Dump prints one line per node in walk order, optionally colored with
// NewColors.
package encode
