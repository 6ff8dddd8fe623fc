// Package gpath parses slash-delimited GFF paths.
//
// A path is a sequence of segments separated by '/':
//   - Label     - field of the current struct
//   - Label[N]  - element N of a list field
//   - N         - language N of a localized-string field (last segment only)
//
// Leading, trailing and repeated slashes are ignored, so "/A/B", "A/B/"
// and "A//B" are the same path. A single trailing modifier changes what
// a resolved path yields:
//   - $ - the field's value
//   - ? - the field's kind
//   - % - the field's string reference
//
// # Usage
//
//	p, err := gpath.Parse("/ItemList[2]/LocName/0$")
//	for seg := p; seg != nil; seg = seg.Next {
//	    fmt.Println(seg.SegmentString())
//	}
//
// Whether a numeric segment selects a language or names a field is
// decided during resolution, against the node it is applied to.
//
// # Related Packages
//
//   - github.com/signadot/gff-format/ir - resolves paths against trees
package gpath
