package render

import (
	"github.com/wippyai/layoutview/registry"
	"go.uber.org/zap"
)

const (
	DefaultMaxDepth    = 16
	DefaultMaxChildren = 200
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry selects the printers to use. The default is host.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(rd *Renderer) { rd.reg = r }
}

// WithMaxDepth limits how deeply children are expanded.
func WithMaxDepth(n int) Option {
	return func(rd *Renderer) {
		if n > 0 {
			rd.maxDepth = n
		}
	}
}

// WithMaxChildren limits the children shown per node.
func WithMaxChildren(n int) Option {
	return func(rd *Renderer) {
		if n > 0 {
			rd.maxChildren = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(rd *Renderer) { rd.log = l }
}
