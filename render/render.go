package render

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/host"
	"github.com/wippyai/layoutview/printer"
	"github.com/wippyai/layoutview/registry"
	"github.com/wippyai/layoutview/target"
	"go.uber.org/zap"
)

// Node is the rendering of one value.
type Node struct {
	Err       error
	Summary   string
	Printer   string // registry entry name, empty for default rendering
	Children  []Child
	Hint      printer.Hint
	Truncated bool
}

type Child struct {
	Node  *Node
	Label string
}

// Renderer renders values with a printer registry and a type resolver.
type Renderer struct {
	types       target.TypeResolver
	reg         *registry.Registry
	log         *zap.Logger
	maxDepth    int
	maxChildren int
	depth       int // depth at which a nested FormatValue call renders
}

// New returns a renderer resolving type names through types. It uses the
// default registry unless WithRegistry is given.
func New(types target.TypeResolver, opts ...Option) *Renderer {
	r := &Renderer{
		types:       types,
		maxDepth:    DefaultMaxDepth,
		maxChildren: DefaultMaxChildren,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.reg == nil {
		r.reg = host.Default()
	}
	if r.log == nil {
		r.log = Logger()
	}
	return r
}

// LookupType resolves a type name through the renderer's resolver.
func (r *Renderer) LookupType(name string) (*target.Type, error) {
	if r.types == nil {
		return nil, errors.NotFound(errors.PhaseResolve, "type", name)
	}
	return r.types.LookupType(name)
}

// Render renders v and its children.
func (r *Renderer) Render(v *target.Value) *Node {
	return r.render(v, 0)
}

// FormatValue renders v on one line. Printers call it for nested values, which
// are rendered one level below the value being printed.
func (r *Renderer) FormatValue(v *target.Value) string {
	if r.depth > r.maxDepth {
		return "{...}"
	}
	return Format(r.render(v, r.depth))
}

func (r *Renderer) render(v *target.Value, depth int) (n *Node) {
	prev := r.depth
	r.depth = depth + 1
	defer func() {
		r.depth = prev
		if rec := recover(); rec != nil {
			name := ""
			if n != nil {
				name = n.Printer
			}
			n = r.fail(&Node{Printer: name}, v, errors.Panic(errors.PhaseRender, v.Type().String(), rec))
		}
	}()

	p, entry := r.reg.Lookup(v, r)
	if p == nil {
		return r.renderDefault(v, depth)
	}

	n = &Node{Printer: entry.Name, Hint: p.Hint()}
	summary, err := p.Summary()
	if err != nil {
		return r.fail(n, v, err)
	}
	n.Summary = summary
	if cp, ok := p.(printer.ChildPrinter); ok {
		r.expand(n, cp.Children(), depth)
	}
	return n
}

func (r *Renderer) fail(n *Node, v *target.Value, err error) *Node {
	r.log.Debug("render failed",
		zap.String("expr", v.Expr()),
		zap.String("type", v.Type().String()),
		zap.String("printer", n.Printer),
		zap.Error(err))
	n.Err = err
	n.Summary = "<error: " + err.Error() + ">"
	n.Children = nil
	return n
}

func (r *Renderer) expand(n *Node, children iter.Seq2[printer.Child, error], depth int) {
	if depth >= r.maxDepth {
		n.Truncated = true
		return
	}
	for c, err := range children {
		if err != nil {
			r.log.Debug("child enumeration failed", zap.Error(err))
			n.Children = append(n.Children, Child{
				Label: "<error>",
				Node:  &Node{Err: err, Summary: "<error: " + err.Error() + ">"},
			})
			return
		}
		if len(n.Children) >= r.maxChildren {
			n.Truncated = true
			return
		}
		n.Children = append(n.Children, Child{Label: c.Label, Node: r.render(c.Value, depth+1)})
	}
}

func (r *Renderer) renderDefault(v *target.Value, depth int) *Node {
	st := v.Type().Strip()
	if st == nil {
		return r.fail(&Node{}, v, errors.TypeMismatch(errors.PhaseRender, []string{v.Expr()}, v.Type().String(), "unresolved typedef"))
	}

	switch st.Kind {
	case target.KindArray:
		n := &Node{Hint: printer.HintSequence}
		r.expand(n, elements(v, st.Len), depth)
		return emptyAggregate(n)
	case target.KindStruct:
		n := &Node{}
		r.expand(n, fields(v, st), depth)
		return emptyAggregate(n)
	}

	s, err := scalar(v, st)
	if err != nil {
		return r.fail(&Node{}, v, err)
	}
	return &Node{Summary: s}
}

func emptyAggregate(n *Node) *Node {
	if len(n.Children) == 0 && !n.Truncated {
		n.Summary = "{}"
	}
	return n
}

func elements(v *target.Value, n uint64) iter.Seq2[printer.Child, error] {
	return func(yield func(printer.Child, error) bool) {
		for i := uint64(0); i < n; i++ {
			e, err := v.Index(i)
			if !yield(printer.Child{Label: "[" + strconv.FormatUint(i, 10) + "]", Value: e}, err) || err != nil {
				return
			}
		}
	}
}

// fields yields struct members in declaration order. Base subobjects are
// labelled with their type in angle brackets.
func fields(v *target.Value, st *target.Type) iter.Seq2[printer.Child, error] {
	return func(yield func(printer.Child, error) bool) {
		for _, f := range st.Fields {
			fv, err := v.Field(f.Name)
			label := f.Name
			if f.Embedded {
				label = "<" + f.Type.Name + ">"
			}
			if !yield(printer.Child{Label: label, Value: fv}, err) || err != nil {
				return
			}
		}
	}
}

func scalar(v *target.Value, st *target.Type) (string, error) {
	switch st.Kind {
	case target.KindVoid:
		return "void", nil
	case target.KindBool:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case target.KindInt:
		n, err := v.Int()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case target.KindUint:
		n, err := v.Uint()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n, 10), nil
	case target.KindFloat:
		f, err := v.Float()
		if err != nil {
			return "", err
		}
		bits := 64
		if st.Size == 4 {
			bits = 32
		}
		return strconv.FormatFloat(f, 'g', -1, bits), nil
	case target.KindPointer:
		p, err := v.Pointer()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("0x%x", p), nil
	}
	return "", errors.Unsupported(errors.PhaseRender, "rendering "+st.Kind.String()+" values")
}
