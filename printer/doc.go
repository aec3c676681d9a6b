// Package printer implements pretty-printers for ocudu container and scalar types.
//
// A printer wraps one target value and answers the rendering protocol a debugger
// host asks for: a short summary, an optional lazy sequence of children and a
// display hint. Printers only read target memory. They never write it and never
// evaluate code in the inspected process.
//
// # Printers
//
//	static vector     ocudu::static_vector<T, N>     sequence of length L, capacity C
//	bounded bitset    ocudu::bounded_bitset<N>       bitset of length L, capacity C = 0101...
//	tiny optional     ocudu::tiny_optional<T>        optional (present) / optional (empty)
//	slotted array     ocudu::slotted_array<T, N>     slot map of N elements, capacity C
//	slotted vector    ocudu::slotted_vector<T>       sparse collection of N elements
//	bf16              strong_type<.., strong_bf16_tag> 1.0
//	complex bf16      ocudu::cbf16_t                 1.0 + -0.5i
//	strong type       ocudu::strong_type<T, Tag>     {val = 3}
//	llr               ocudu::log_likelihood_ratio    -1
//
// Setups returns them in registration order. Order matters: a bf16 value is also
// a strong_type and the first matching pattern wins.
//
// # Corrupt memory
//
// Lengths and counts read from the target are never trusted as indices. Each
// printer reports the raw value in its summary and clamps enumeration to the
// static capacity and the storage actually present, logging a warning through
// Logger when it does.
//
// # Host
//
// Printers that need to format nested values or resolve type names go through
// the Host they were constructed with. The render package provides one.
package printer
