// Package eval filters the nodes of an ir tree with expr-lang
// expressions.
//
// A query is a boolean expression evaluated once per node visited by
// ir.Struct.Walk, with these variables:
//
//	path    the node's flat path, "/ItemList[0]/Tag"
//	label   the last path segment
//	kind    the kind name, "cexostr"
//	value   the value: a number, string, hex string for void data,
//	        a language map for localized strings, nil for structs and lists
//	strref  the string reference, -1 when unbound
//	depth   nesting depth, 1 for top-level fields
//
// and the functions get(path), which returns the value at a path from
// the root ($ and ? modifiers apply), and has(path).
//
//	kind == "resref" && value startsWith "nw_"
//	path matches "^/ItemList\\[\\d+\\]/Tag$"
//	depth == 1 && has("/FirstName/0")
package eval
