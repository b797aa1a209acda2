package xpath

import (
	"testing"

	"github.com/midbel/query/xml"
)

func TestDocumentOrderMixed(t *testing.T) {
	doc := parseDocument(t)
	titles, err := Find(doc, "//title")
	if err != nil {
		t.Fatalf("fail to collect nodes: %s", err)
	}
	if titles.Len() < 2 {
		t.Fatalf("not enough nodes for the test, got %d", titles.Len())
	}
	var seq Sequence
	seq.Append(createLiteral("str"))
	seq.Append(titles[1])
	seq.Append(createLiteral(1.0))
	seq.Append(titles[0])
	seq.Append(titles[0])

	res := seq.DocumentOrder()
	if res.Len() != 4 {
		t.Fatalf("duplicate node should be removed! got %d items", res.Len())
	}
	if !res[0].Atomic() || !res[1].Atomic() {
		t.Errorf("atomic items should come first")
	}
	if res[0].Value() != "str" || res[1].Value() != 1.0 {
		t.Errorf("atomic items should keep their relative order")
	}
	if res[2].Atomic() || res[3].Atomic() {
		t.Fatalf("nodes should follow the atomic items")
	}
	if !xml.Before(res[2].Node(), res[3].Node()) {
		t.Errorf("nodes should be sorted in document order")
	}
}
