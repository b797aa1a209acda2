package xml

import (
	"testing"
)

const catalog = `<catalog>
	<item id="1">first<sub>nested</sub></item>
	<item id="2">second</item>
</catalog>
`

func TestDocumentOrder(t *testing.T) {
	top, err := ParseString(catalog)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	var (
		root   = top.Root().(*Element)
		first  = root.Nodes[0].(*Element)
		second = root.Nodes[1].(*Element)
		sub    = first.Nodes[1].(*Element)
	)
	if !Before(first, second) {
		t.Errorf("first item should come before second")
	}
	if !Before(first, sub) {
		t.Errorf("parent should come before its descendant")
	}
	if !Before(sub, second) {
		t.Errorf("descendant of first should come before second")
	}
	if !After(second, first) {
		t.Errorf("second item should come after first")
	}
	if Before(first, first) {
		t.Errorf("node should not come before itself")
	}

	attr := &first.Attrs[0]
	if !Before(attr, first.Nodes[0]) {
		t.Errorf("attribute should come before element content")
	}
	if !Before(first, attr) {
		t.Errorf("element should come before its attributes")
	}
}

func TestIdentity(t *testing.T) {
	top, err := ParseString(catalog)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	var (
		root   = top.Root().(*Element)
		first  = root.Nodes[0].(*Element)
		second = root.Nodes[1].(*Element)
	)
	if first.Identity() == second.Identity() {
		t.Errorf("distinct nodes share an identity")
	}
	if first.Identity() != first.Identity() {
		t.Errorf("identity should be stable")
	}
	attr := &first.Attrs[0]
	if attr.Identity() == first.Identity() {
		t.Errorf("attribute should not share identity with its element")
	}
}

func TestValue(t *testing.T) {
	top, err := ParseString(catalog)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	var (
		root  = top.Root().(*Element)
		first = root.Nodes[0].(*Element)
	)
	if got := first.Value(); got != "firstnested" {
		t.Errorf("element value mismatched! got %q", got)
	}
	if got := top.Value(); got != "firstnestedsecond" {
		t.Errorf("document value mismatched! got %q", got)
	}
	attr := &first.Attrs[0]
	if attr.Value() != "1" {
		t.Errorf("attribute value mismatched! got %q", attr.Value())
	}
}

func TestRoot(t *testing.T) {
	top, err := ParseString(catalog)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	var (
		root = top.Root().(*Element)
		sub  = root.Nodes[0].(*Element).Nodes[1]
	)
	if Root(sub) != Node(top) {
		t.Errorf("root of nested element should be the document")
	}
	if Root(top) != Node(top) {
		t.Errorf("root of the document should be itself")
	}
}

func TestQName(t *testing.T) {
	qn := QualifiedName("item", "b")
	if qn.QualifiedName() != "b:item" {
		t.Errorf("qualified name mismatched! got %q", qn.QualifiedName())
	}
	if qn.LocalName() != "item" {
		t.Errorf("local name mismatched! got %q", qn.LocalName())
	}
	qn = ParseName("b:item")
	if qn.Space != "b" || qn.Name != "item" {
		t.Errorf("parsed name mismatched! got %+v", qn)
	}
	qn = ParseName("item")
	if qn.Space != "" || qn.Name != "item" {
		t.Errorf("parsed name mismatched! got %+v", qn)
	}
}

func TestFind(t *testing.T) {
	top, err := ParseString(catalog)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	root := top.Root().(*Element)
	if node := root.Find("item"); node == nil || node.Value() != "firstnested" {
		t.Errorf("find should give the first matching child")
	}
	if node := root.Find("missing"); node != nil {
		t.Errorf("find of missing child should give nil")
	}
}
