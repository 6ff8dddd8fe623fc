// Package gomap converts trees to and from generic Go maps, and through
// them to JSON and YAML.
//
// A struct boxes to a map of its labels to field maps, plus metadata
// keys starting with "__":
//
//	__data_type: "UTC "
//	__struct_id: 4294967295
//	FirstName:
//	  type: cexolocstr
//	  str_ref: 42
//	  value: {"0": Hi, "1": Hallo}
//	ItemList:
//	  type: list
//	  value:
//	  - __struct_id: 0
//	    Tag: {type: cexostr, value: torch}
//
// __data_type and __data_version appear on the root only; the version
// is omitted when it is ir.DefaultVersion. Void data boxes to hex.
package gomap
