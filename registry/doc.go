// Package registry maps type-name patterns to printer constructors.
//
// Entries are scanned in registration order and the first pattern that matches
// a value's canonical type name wins. Patterns are RE2 expressions matched
// unanchored, so a pattern that must cover the whole name carries its own ^ and $.
//
//	reg := registry.New()
//	_ = reg.Register("llr", `ocudu::log_likelihood_ratio`, printer.NewLLR)
//	p, entry := reg.Lookup(v, host) // nil, nil when nothing matches
//
// A registry is populated once at startup. After Seal it rejects further
// registrations and is safe to share between readers.
package registry
