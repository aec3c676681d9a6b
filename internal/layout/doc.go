// Package layout provides size, alignment and field offset calculations.
//
// Two rule sets are supported. Struct applies the C/C++ rules used by the inspected
// native process: members laid out in declaration order, each aligned to its own
// alignment, the total padded to the largest member alignment. Calculator applies the
// Component Model's Canonical ABI rules to WIT types so that guest records living in
// wasm linear memory can be described as target types.
//
// # Usage
//
//	info := layout.Struct([]layout.Member{{Size: 8, Align: 8}, {Size: 1, Align: 1}})
//	// info.Size == 16, info.Offsets == []uint64{0, 8}
//
//	info = layout.NewCalculator().Calculate(witType)
//
// This package is internal to layoutview.
package layout
