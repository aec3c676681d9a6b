package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/layoutview/host"
	"github.com/wippyai/layoutview/memory"
	"github.com/wippyai/layoutview/printer"
	"github.com/wippyai/layoutview/registry"
	"github.com/wippyai/layoutview/render"
	"github.com/wippyai/layoutview/snapshot"
)

var logger = zap.NewNop()

type options struct {
	snapshot    string
	symbol      string
	wasm        string
	init        string
	depth       int
	children    int
	tree        bool
	list        bool
	interactive bool
	verbose     bool
}

func main() {
	var o options
	flag.StringVar(&o.snapshot, "snapshot", "", "Path to snapshot manifest (YAML)")
	flag.StringVar(&o.symbol, "symbol", "", "Symbol to print (default: all)")
	flag.StringVar(&o.wasm, "wasm", "", "Guest module whose linear memory replaces the manifest regions")
	flag.StringVar(&o.init, "init", "", "Guest export to call before reading memory")
	flag.IntVar(&o.depth, "depth", render.DefaultMaxDepth, "Maximum expansion depth")
	flag.IntVar(&o.children, "children", render.DefaultMaxChildren, "Maximum children per value")
	flag.BoolVar(&o.tree, "tree", false, "Print values as an indented tree")
	flag.BoolVar(&o.list, "list", false, "List printers and symbols and exit")
	flag.BoolVar(&o.interactive, "i", false, "Interactive mode with TUI")
	flag.BoolVar(&o.verbose, "v", false, "Verbose logging")
	flag.Parse()

	if o.snapshot == "" && !o.list {
		fmt.Fprintln(os.Stderr, "Usage: inspect -snapshot <m.yaml> [-symbol name] [-tree] [-depth n]")
		fmt.Fprintln(os.Stderr, "       inspect -snapshot <m.yaml> -wasm <guest.wasm> [-init func]")
		fmt.Fprintln(os.Stderr, "       inspect [-snapshot <m.yaml>] -list")
		fmt.Fprintln(os.Stderr, "       inspect -snapshot <m.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	if o.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		logger = log.Named("inspect")
		printer.SetLogger(log.Named("printer"))
		registry.SetLogger(log.Named("registry"))
		render.SetLogger(log.Named("render"))
		snapshot.SetLogger(log.Named("snapshot"))
	}

	if err := run(context.Background(), o, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, w io.Writer) error {
	var snap *snapshot.Snapshot
	if o.snapshot != "" {
		s, err := snapshot.Load(o.snapshot)
		if err != nil {
			return err
		}
		snap = s
	}

	if o.list {
		listAll(w, host.Default(), snap)
		return nil
	}

	if o.wasm != "" {
		rt, s, err := attachGuest(ctx, snap, o.wasm, o.init)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)
		snap = s
	}

	r := render.New(snap.Types, render.WithMaxDepth(o.depth), render.WithMaxChildren(o.children))

	if o.interactive {
		return runInteractive(o.snapshot, snap, r)
	}

	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return printSymbols(w, snap, r, o.symbol, o.tree, styled)
}

// attachGuest instantiates the guest module and returns a copy of snap that
// reads from its exported memory.
func attachGuest(ctx context.Context, snap *snapshot.Snapshot, path, initFunc string) (wazero.Runtime, *snapshot.Snapshot, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read guest: %w", err)
	}
	if ps := snap.Types.PointerSize(); ps != 4 {
		logger.Warn("wasm32 guest inspected with a non-32-bit manifest; set pointer_size: 4",
			zap.Uint64("pointer_size", ps))
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, nil, fmt.Errorf("instantiate WASI: %w", err)
	}

	// Reactor modules export _initialize; commands are never started.
	cfg := wazero.NewModuleConfig().WithStartFunctions("_initialize")
	mod, err := rt.InstantiateWithConfig(ctx, bin, cfg)
	if err != nil {
		rt.Close(ctx)
		return nil, nil, fmt.Errorf("instantiate guest: %w", err)
	}

	if initFunc != "" {
		fn := mod.ExportedFunction(initFunc)
		if fn == nil {
			rt.Close(ctx)
			return nil, nil, fmt.Errorf("guest does not export %q", initFunc)
		}
		if _, err := fn.Call(ctx); err != nil {
			rt.Close(ctx)
			return nil, nil, fmt.Errorf("call %s: %w", initFunc, err)
		}
	}

	mem := mod.ExportedMemory("memory")
	if mem == nil {
		rt.Close(ctx)
		return nil, nil, fmt.Errorf("guest does not export memory")
	}
	return rt, snap.WithMemory(memory.NewWazero(mem)), nil
}

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func listAll(w io.Writer, reg *registry.Registry, snap *snapshot.Snapshot) {
	fmt.Fprintln(w, "Printers:")
	for _, e := range reg.Entries() {
		fmt.Fprintf(w, "  %-16s %s\n", e.Name, e.Pattern)
	}
	if snap == nil {
		return
	}
	fmt.Fprintln(w, "\nSymbols:")
	for _, s := range snap.Symbols {
		fmt.Fprintf(w, "  %-16s %s @ 0x%x\n", s.Name, s.Type.Name, s.Address)
	}
}

func printSymbols(w io.Writer, snap *snapshot.Snapshot, r *render.Renderer, only string, tree, styled bool) error {
	syms := snap.Symbols
	if only != "" {
		v, err := snap.Symbol(only)
		if err != nil {
			return err
		}
		syms = []snapshot.Symbol{{Name: only, Type: v.Type(), Address: v.Address()}}
	}

	paint := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	for _, sym := range syms {
		v := snap.Value(sym)
		if tree {
			fmt.Fprint(w, r.Text(sym.Name, v))
			continue
		}
		n := r.Render(v)
		out := render.Format(n)
		if n.Err != nil {
			out = paint(errorStyle, out)
		}
		fmt.Fprintf(w, "%s = %s\n", paint(nameStyle, sym.Name), out)
	}
	return nil
}
