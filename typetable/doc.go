// Package typetable holds named target types and resolves type names for the
// renderer and printers.
//
// A Table starts with the C and C++ primitives of an LP64 little-endian target,
// or of an ILP32 one such as wasm32 when built with NewForPointerSize(4).
// Aggregates are added with Struct, which lays members out with C rules, or with
// StructAt when the offsets are known. Template parameters are parsed from the
// type name when a type is added, so "ocudu::static_vector<int, 4>" binds int
// and the constant 4.
//
// LookupType also understands the derived spellings "T *", "T[N]" and "const T".
//
// ImportWIT mirrors a WIT type in the canonical ABI layout it has in a wasm
// guest's linear memory, so records produced by a component can be inspected
// with the same renderer.
package typetable
