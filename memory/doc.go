// Package memory provides layoutview.Memory backends.
//
//	Buffer   one contiguous byte slice mapped at a base address
//	Regions  several non-overlapping buffers, e.g. the segments of a core dump
//	Wazero   the linear memory of a running wazero guest
//
// All backends are read-only and little-endian. Reads that are not fully contained in
// mapped memory fail with an errors.PhaseMemory / errors.KindOutOfBounds error; partial
// reads are never returned.
package memory
