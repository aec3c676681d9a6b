// Package host installs the built-in printers into a registry.
//
// Install works against any Registrar, so an embedding debugger can register
// the printers with its own lookup machinery. Default returns a process-wide
// registry holding all of them, built on first use and sealed.
package host
