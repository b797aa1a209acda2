package xml

import (
	"io"
	"strings"
)

// WriteNode serializes a single node and its subtree on one line. It
// is meant for query results, not for faithful document output.
func WriteNode(node Node) string {
	var str strings.Builder
	writeNode(&str, node)
	return str.String()
}

func writeNode(w *strings.Builder, node Node) {
	switch node := node.(type) {
	case *Document:
		for _, n := range node.Nodes {
			writeNode(w, n)
		}
	case *Element:
		writeElement(w, node)
	case *Attribute:
		w.WriteString(node.QualifiedName())
		w.WriteString("=\"")
		w.WriteString(escapeText(node.Datum))
		w.WriteString("\"")
	case *Text:
		w.WriteString(escapeText(node.Content))
	case *Comment:
		w.WriteString("<!--")
		w.WriteString(node.Content)
		w.WriteString("-->")
	case *Instruction:
		w.WriteString("<?")
		w.WriteString(node.Target)
		if node.Content != "" {
			w.WriteString(" ")
			w.WriteString(node.Content)
		}
		w.WriteString("?>")
	case *Namespace:
		w.WriteString("xmlns")
		if !node.Default() {
			w.WriteString(":")
			w.WriteString(node.Prefix)
		}
		w.WriteString("=\"")
		w.WriteString(node.Uri)
		w.WriteString("\"")
	}
}

func writeElement(w *strings.Builder, el *Element) {
	w.WriteString("<")
	w.WriteString(el.QualifiedName())
	for _, ns := range el.Namespaces {
		w.WriteString(" xmlns")
		if !ns.Default() {
			w.WriteString(":")
			w.WriteString(ns.Prefix)
		}
		w.WriteString("=\"")
		w.WriteString(ns.Uri)
		w.WriteString("\"")
	}
	for i := range el.Attrs {
		w.WriteString(" ")
		writeNode(w, &el.Attrs[i])
	}
	if el.Empty() {
		w.WriteString("/>")
		return
	}
	w.WriteString(">")
	for _, n := range el.Nodes {
		writeNode(w, n)
	}
	w.WriteString("</")
	w.WriteString(el.QualifiedName())
	w.WriteString(">")
}

func escapeText(str string) string {
	escaper := strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		"&", "&amp;",
		"\"", "&quot;",
	)
	return escaper.Replace(str)
}

func WriteTo(w io.Writer, node Node) error {
	_, err := io.WriteString(w, WriteNode(node))
	return err
}
