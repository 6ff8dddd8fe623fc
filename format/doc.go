// Package format holds the fixed parts of the GFF layout: the header
// and table entry sizes, and the 4-byte resource type tags.
package format
