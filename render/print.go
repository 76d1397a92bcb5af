package render

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Print writes an indented, markup-like view of the tree to w. Attributes,
// properties and style entries are sorted so output is stable.
// A nil tree prints nothing.
func Print(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	return printNode(w, n, 0)
}

// String returns the Print output of n.
func String(n *Node) string {
	var b strings.Builder
	_ = Print(&b, n)
	return b.String()
}

func printNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s<%s%s>", indent, n.Tag, attributes(n)); err != nil {
		return err
	}
	if len(n.Children) == 0 {
		_, err := fmt.Fprintf(w, "%s</%s>\n", n.Text, n.Tag)
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if n.Text != "" {
		if _, err := fmt.Fprintf(w, "%s  %s\n", indent, n.Text); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := printNode(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Tag)
	return err
}

func attributes(n *Node) string {
	var parts []string
	if n.Slot != "" {
		parts = append(parts, fmt.Sprintf("slot=%q", n.Slot))
	}
	if len(n.Classes) > 0 {
		parts = append(parts, fmt.Sprintf("class=%q", strings.Join(n.Classes, " ")))
	}
	for _, k := range sortedKeys(n.Attrs) {
		if v := n.Attrs[k]; v != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", k, v))
		} else {
			parts = append(parts, k)
		}
	}
	for _, k := range sortedKeys(n.Props) {
		parts = append(parts, fmt.Sprintf(".%s=%q", k, fmt.Sprint(n.Props[k])))
	}
	if len(n.Style) > 0 {
		var decls []string
		for _, k := range sortedKeys(n.Style) {
			decls = append(decls, k+": "+n.Style[k])
		}
		parts = append(parts, fmt.Sprintf("style=%q", strings.Join(decls, "; ")))
	}
	for _, ev := range n.Listeners {
		parts = append(parts, "@"+ev)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
