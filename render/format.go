package render

import (
	"strings"

	"github.com/wippyai/layoutview/printer"
	"github.com/wippyai/layoutview/target"
)

// Format writes n on one line the way gdb prints a value: the summary followed
// by " = {...}" when there are children. Sequence children are unlabelled.
func Format(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteString(n.Summary)
	if len(n.Children) == 0 && !n.Truncated {
		return
	}
	if n.Summary != "" {
		b.WriteString(" = ")
	}
	b.WriteByte('{')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		if n.Hint != printer.HintSequence {
			b.WriteString(c.Label)
			b.WriteString(" = ")
		}
		writeNode(b, c.Node)
	}
	if n.Truncated {
		if len(n.Children) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteByte('}')
}

// Text renders v as an indented tree, one value per line, under name.
func (r *Renderer) Text(name string, v *target.Value) string {
	var b strings.Builder
	writeTree(&b, name, r.Render(v), 0)
	return b.String()
}

func writeTree(b *strings.Builder, label string, n *Node, indent int) {
	pad := strings.Repeat("  ", indent)
	b.WriteString(pad)
	b.WriteString(label)
	if len(n.Children) == 0 && !n.Truncated {
		b.WriteString(" = ")
		b.WriteString(Format(n))
		b.WriteByte('\n')
		return
	}
	if n.Summary != "" {
		b.WriteString(" = ")
		b.WriteString(n.Summary)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		writeTree(b, c.Label, c.Node, indent+1)
	}
	if n.Truncated {
		b.WriteString(pad)
		b.WriteString("  ...\n")
	}
}
