// Package layoutview decodes compact, non-self-describing binary layouts found in the
// memory of an inspected process into readable values, without running code in it.
//
// The library plays the part of a debugger's pretty-printer extension: a value is a
// typed handle into target memory, a registry maps type-name patterns to printers, and a
// renderer turns a printer's summary, children and display hint into text.
//
// # Architecture Overview
//
//	layoutview/          Root package with the read-only Memory interface
//	├── target/          Type descriptors and typed value accessors
//	├── printer/         Printer contract and the layout printers
//	├── registry/        Type-name pattern registry
//	├── host/            Registration entry point and the process-wide registry
//	├── render/          Display pipeline with default rendering and error fallback
//	├── typetable/       Type tables, template argument parsing, WIT import
//	├── memory/          Buffer, multi-region and wazero memory backends
//	├── snapshot/        YAML snapshot manifests
//	├── errors/          Structured error types
//	└── cmd/inspect/     CLI: print symbols, list printers, interactive browser
//
// # Quick Start
//
//	snap, err := snapshot.Load("core.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := snap.Symbol("ue_list")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := render.New(snap.Types)
//	fmt.Println(r.FormatValue(v))
//	// sequence of length 2, capacity 4 = {10, 20}
//
// # Layout Families
//
//	Pattern                           Printer        Summary
//	───────────────────────────────────────────────────────────────────────────
//	^ocudu::static_vector<.*>$        StaticVector   sequence of length L, capacity C
//	^ocudu::bounded_bitset<.*>$       BoundedBitset  bitset of length L, capacity C = bits
//	^ocudu::tiny_optional<.*>$        TinyOptional   optional (present|empty)
//	^ocudu::slotted_array<.*>$        SlottedArray   slot map of N elements, capacity C
//	^ocudu::slotted_vector<.*>$       SlottedVector  sparse collection of N elements
//	ocudu::strong_bf16_tag            BF16           1.0
//	^ocudu::cbf16_t$                  CBF16          1.0 + -1.0i
//	^ocudu::strong_type<.*>$          StrongType     {val = 3}
//	ocudu::log_likelihood_ratio       LLR            -1
//
// # Thread Safety
//
// Printers are built per render request and must not be shared. The default registry is
// built once and only read afterwards.
package layoutview
