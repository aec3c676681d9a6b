// Package render turns target values into the summary/children/hint triple a
// debugger displays, and into text.
//
// A Renderer looks each value up in a printer registry. Matched values are
// rendered by their printer; everything else gets default rendering in the
// style of gdb's print command:
//
//	bool            true
//	integers        -3
//	floats          1.5
//	pointers        0x7ffe0010
//	arrays          {1, 2, 3}
//	structs         {sz = 2, array = {_M_elems = {10, 20, 0, 0}}}
//	typedefs        rendered as their target type
//
// Printer errors and panics never escape: the affected node's summary becomes
// "<error: ...>" and Node.Err holds the cause.
//
// Output is bounded by WithMaxDepth and WithMaxChildren. Truncated nodes end
// their child list with "...".
//
// A Renderer is not safe for concurrent use. The registry it reads may be shared.
package render
