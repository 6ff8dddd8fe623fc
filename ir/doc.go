// Package ir provides the in-memory tree of a GFF document.
//
// # Overview
//
// A Document holds a root Struct. A Struct is a set of uniquely
// labeled Fields and a 32-bit struct id. Each Field holds a Value,
// which is one of a closed set of Go types, one per stored kind:
//
//	Byte Char Word Short Dword Int Dword64 Int64 Float Double
//	CExoStr ResRef LocString Void *Struct *List
//
// A LocString maps language ids to text; its string-table reference
// lives on the owning Field as StrRef, NoStrRef when unbound.
//
// # Building Trees
//
//	doc := ir.NewDocument("UTC ")
//	doc.Root.AddByte("Gender", 1)
//	doc.Root.AddCExoLocStr("FirstName", map[uint32]string{0: "Aribeth"}, ir.NoStrRef)
//	items := doc.Root.AddList("ItemList")
//	items.AddStruct(0).AddResRef("InventoryRes", "nw_it_torch001")
//
// Values from plain Go types go through ValueFor, which checks the
// domain of the target kind; Validate checks a whole tree.
//
// # Paths
//
// Nodes are addressed with slash-delimited paths parsed by package
// gpath:
//
//	/FirstName/0      language 0 of a localized string
//	/ItemList[1]/Tag  field Tag of the second list element
//	/Gender$          the value
//	/Gender?          the kind
//	/FirstName%       the string reference
//
// Struct.Resolve, Get, Set and Delete work on such paths; Walk visits
// every node with its flat path.
//
// # Errors
//
// All operations report *Error values carrying one of the five error
// kinds. They match the sentinels ErrMalformedHeader, ErrOutOfBounds,
// ErrUnknownFieldType, ErrTypeMismatch and ErrPathNotFound under
// errors.Is.
package ir
