package xpath

import (
	"slices"

	"github.com/midbel/query/xml"
)

// Item is one entry of a Sequence: either a node of the queried tree
// or an atomic value (string, float64, bool).
type Item interface {
	Node() xml.Node
	Value() any
	Atomic() bool
}

type Sequence []Item

func Singleton(value any) Sequence {
	var item Item
	switch value := value.(type) {
	case xml.Node:
		item = createNode(value)
	case Item:
		item = value
	default:
		item = createLiteral(value)
	}
	var seq Sequence
	seq.Append(item)
	return seq
}

func (s *Sequence) First() Item {
	if s.Empty() {
		return nil
	}
	return (*s)[0]
}

func (s *Sequence) Len() int {
	return len(*s)
}

func (s *Sequence) Append(item Item) {
	*s = append(*s, item)
}

func (s *Sequence) Concat(other Sequence) {
	*s = slices.Concat(*s, other)
}

func (s *Sequence) Empty() bool {
	return len(*s) == 0
}

func (s *Sequence) Singleton() bool {
	return len(*s) == 1
}

func (s *Sequence) True() bool {
	return booleanValue(*s)
}

// Nodes reports whether every item of the sequence is a node.
func (s *Sequence) Nodes() bool {
	for i := range *s {
		if (*s)[i].Atomic() {
			return false
		}
	}
	return true
}

// DocumentOrder returns the sequence sorted in document order with
// duplicate nodes removed by identity. Atomic items sort before the
// nodes and keep their relative order.
func (s *Sequence) DocumentOrder() Sequence {
	seq := s.Unique()
	slices.SortStableFunc(seq, func(a, b Item) int {
		switch {
		case a.Atomic() && b.Atomic():
			return 0
		case a.Atomic():
			return -1
		case b.Atomic():
			return 1
		}
		if a.Node().Identity() == b.Node().Identity() {
			return 0
		}
		if xml.Before(a.Node(), b.Node()) {
			return -1
		}
		return 1
	})
	return seq
}

// Unique removes duplicate nodes by identity, keeping the first
// occurrence. Atomic items are always kept.
func (s *Sequence) Unique() Sequence {
	var (
		seq  Sequence
		seen = make(map[string]struct{})
	)
	for _, i := range *s {
		if i.Atomic() {
			seq.Append(i)
			continue
		}
		id := i.Node().Identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		seq.Append(i)
	}
	return seq
}

type nodeItem struct {
	node xml.Node
}

func createNode(node xml.Node) Item {
	return nodeItem{
		node: node,
	}
}

func (i nodeItem) Node() xml.Node {
	return i.node
}

func (i nodeItem) Value() any {
	return i.node.Value()
}

func (i nodeItem) Atomic() bool {
	return false
}

type literalItem struct {
	value any
}

func createLiteral(value any) Item {
	if i, ok := value.(literalItem); ok {
		return i
	}
	return literalItem{
		value: value,
	}
}

func (i literalItem) Node() xml.Node {
	return nil
}

func (i literalItem) Value() any {
	return i.value
}

func (i literalItem) Atomic() bool {
	return true
}
