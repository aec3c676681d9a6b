package host

import (
	"sync"

	"github.com/wippyai/layoutview/printer"
	"github.com/wippyai/layoutview/registry"
)

// Registrar accepts printer registrations.
type Registrar interface {
	Register(name, pattern string, ctor printer.Constructor) error
}

// Install registers every built-in printer with r, in order. It stops at the
// first failure.
func Install(r Registrar) error {
	for _, s := range printer.Setups() {
		if err := r.Register(s.Name, s.Pattern, s.New); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultRegistry *registry.Registry
	defaultOnce     sync.Once
)

// Default returns the shared registry of built-in printers. It panics if the
// built-in set fails to register, which only a broken pattern can cause.
func Default() *registry.Registry {
	defaultOnce.Do(func() {
		r := registry.New()
		if err := Install(r); err != nil {
			panic(err)
		}
		r.Seal()
		defaultRegistry = r
	})
	return defaultRegistry
}
