// Package snapshot loads a captured process image described by a YAML manifest.
//
// A manifest declares the types needed to interpret memory, named symbols and
// the memory regions themselves:
//
//	types:
//	  - name: std::array<int, 4>
//	    fields:
//	      - {name: _M_elems, type: "int[4]"}
//	  - name: ocudu::static_vector<int, 4>
//	    fields:
//	      - {name: sz, type: size_t}
//	      - {name: array, type: "std::array<int, 4>"}
//	  - name: ocudu::pci_t
//	    typedef: unsigned short
//	symbols:
//	  - {name: v, type: "ocudu::static_vector<int, 4>", address: 0x1000}
//	regions:
//	  - address: 0x1000
//	    hex: "02000000 00000000 0a000000 14000000 00000000 00000000"
//	  - address: 0x2000
//	    file: heap.bin
//	    offset: 0x40
//	    length: 256
//
// Field offsets follow C layout rules unless every field of a struct gives an
// explicit offset. Types may be declared in any order and may refer to each
// other through pointers. A struct that contains itself by value is rejected.
// Arrays and pointers are spelled in type names: "int[4]", "node *".
//
// A top-level "wit" key names a wasm-tools JSON resolve whose named types are
// imported with their canonical ABI layout before the manifest's own types.
//
// "pointer_size: 4" describes a 32-bit image such as wasm32 linear memory:
// pointers, long and size_t are then 4 bytes wide.
//
// Region and WIT files are resolved relative to the manifest's directory.
package snapshot
