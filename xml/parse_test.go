package xml

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<catalog>
	<item id="1">first</item>
	<item id="2">second</item>
	<!-- trailing note -->
</catalog>
`
	top, err := ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	root, ok := top.Root().(*Element)
	if !ok || root.QualifiedName() != "catalog" {
		t.Fatalf("unexpected root element %v", top.Root())
	}
	if len(root.Nodes) != 3 {
		t.Fatalf("child count mismatched! want 3, got %d", len(root.Nodes))
	}
	first, ok := root.Nodes[0].(*Element)
	if !ok || first.Value() != "first" {
		t.Errorf("unexpected first child %v", root.Nodes[0])
	}
	attr, ok := first.GetAttribute("id")
	if !ok || attr.Value() != "1" {
		t.Errorf("attribute mismatched! got %v", attr)
	}
	if root.Nodes[2].Type() != TypeComment {
		t.Errorf("want comment node, got %s", root.Nodes[2].Type())
	}
}

func TestParseNamespace(t *testing.T) {
	const doc = `<root xmlns="urn:default" xmlns:b="urn:books">
	<b:item>one</b:item>
	<item>two</item>
</root>
`
	top, err := ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	root := top.Root().(*Element)
	if root.Namespace() != "urn:default" {
		t.Errorf("root namespace mismatched! got %q", root.Namespace())
	}
	if len(root.Namespaces) != 2 {
		t.Errorf("namespace declarations mismatched! got %d", len(root.Namespaces))
	}
	item := root.Nodes[0].(*Element)
	if item.Namespace() != "urn:books" {
		t.Errorf("item namespace mismatched! got %q", item.Namespace())
	}
	if item.QualifiedName() != "b:item" {
		t.Errorf("prefix lost! got %q", item.QualifiedName())
	}
	if item.LocalName() != "item" {
		t.Errorf("local name mismatched! got %q", item.LocalName())
	}
	second := root.Nodes[1].(*Element)
	if second.Namespace() != "urn:default" {
		t.Errorf("default namespace not applied! got %q", second.Namespace())
	}
}

func TestParseNested(t *testing.T) {
	const doc = `<a><b><c>deep</c></b><d/></a>`
	top, err := ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	root := top.Root().(*Element)
	c := root.Nodes[0].(*Element).Nodes[0].(*Element)
	if c.QualifiedName() != "c" || c.Value() != "deep" {
		t.Errorf("unexpected nested element %v", c)
	}
	if c.Parent().Parent() != root {
		t.Errorf("parent chain broken")
	}
	d := root.Nodes[1].(*Element)
	if !d.Leaf() {
		t.Errorf("empty element should be a leaf")
	}
	if root.Leaf() {
		t.Errorf("element with children should not be a leaf")
	}
}

func TestParseInstruction(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<?xml-stylesheet href="style.css"?>
<root>body</root>
`
	top, err := ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	if len(top.Nodes) != 2 {
		t.Fatalf("document child count mismatched! got %d", len(top.Nodes))
	}
	pi, ok := top.Nodes[0].(*Instruction)
	if !ok || pi.LocalName() != "xml-stylesheet" {
		t.Errorf("want processing instruction, got %v", top.Nodes[0])
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		"<root>",
		"<root></other>",
		"",
		"no markup at all",
	}
	for _, doc := range tests {
		if _, err := ParseString(doc); err == nil {
			t.Errorf("%s: document parsed but should have failed", doc)
		}
	}
}

func TestWriteNode(t *testing.T) {
	const doc = `<root a="1"><child>text &amp; more</child></root>`
	top, err := ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	got := WriteNode(top.Root())
	if got != doc {
		t.Errorf("serialized form mismatched!\nwant %s\ngot  %s", doc, got)
	}
	var str strings.Builder
	if err := WriteTo(&str, top.Root()); err != nil {
		t.Errorf("write error: %s", err)
	}
	if str.String() != doc {
		t.Errorf("WriteTo mismatched! got %s", str.String())
	}
}
