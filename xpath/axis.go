package xpath

import (
	"iter"

	"github.com/midbel/query/xml"
)

const (
	childAxis            = "child"
	parentAxis           = "parent"
	selfAxis             = "self"
	ancestorAxis         = "ancestor"
	ancestorSelfAxis     = "ancestor-or-self"
	descendantAxis       = "descendant"
	descendantSelfAxis   = "descendant-or-self"
	precedingAxis        = "preceding"
	precedingSiblingAxis = "preceding-sibling"
	followingAxis        = "following"
	followingSiblingAxis = "following-sibling"
	attributeAxis        = "attribute"
	namespaceAxis        = "namespace"
)

func isAxis(str string) bool {
	switch str {
	case childAxis, parentAxis, selfAxis:
	case ancestorAxis, ancestorSelfAxis:
	case descendantAxis, descendantSelfAxis:
	case precedingAxis, precedingSiblingAxis:
	case followingAxis, followingSiblingAxis:
	case attributeAxis, namespaceAxis:
	default:
		return false
	}
	return true
}

func principalType(axis string) xml.NodeType {
	switch axis {
	case attributeAxis:
		return xml.TypeAttribute
	case namespaceAxis:
		return xml.TypeNamespace
	default:
		return xml.TypeElement
	}
}

// isReverse reports whether the axis assembles its candidates in
// reverse document order, so that positional predicates count from
// the node closest to the context node.
func isReverse(axis string) bool {
	switch axis {
	case ancestorAxis, ancestorSelfAxis, precedingAxis, precedingSiblingAxis:
		return true
	default:
		return false
	}
}

// axisNodes returns the candidate nodes of an axis as a lazy,
// restartable sequence. Forward axes yield in document order, reverse
// axes from the context node outwards.
func axisNodes(axis string, node xml.Node) iter.Seq[xml.Node] {
	switch axis {
	case selfAxis:
		return func(yield func(xml.Node) bool) {
			yield(node)
		}
	case childAxis:
		return childNodes(node)
	case parentAxis:
		return func(yield func(xml.Node) bool) {
			if p := node.Parent(); p != nil {
				yield(p)
			}
		}
	case ancestorAxis:
		return ancestorNodes(node, false)
	case ancestorSelfAxis:
		return ancestorNodes(node, true)
	case descendantAxis:
		return descendantNodes(node, false)
	case descendantSelfAxis:
		return descendantNodes(node, true)
	case followingSiblingAxis:
		return siblingNodes(node, false)
	case precedingSiblingAxis:
		return siblingNodes(node, true)
	case followingAxis:
		return followingNodes(node)
	case precedingAxis:
		return precedingNodes(node)
	case attributeAxis:
		return attributeNodes(node)
	case namespaceAxis:
		return namespaceNodes(node)
	default:
		return func(yield func(xml.Node) bool) {}
	}
}

func getNodes(parent xml.Node) []xml.Node {
	switch parent := parent.(type) {
	case *xml.Document:
		return parent.Nodes
	case *xml.Element:
		return parent.Nodes
	default:
		return nil
	}
}

func childNodes(node xml.Node) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		for _, n := range getNodes(node) {
			if !yield(n) {
				return
			}
		}
	}
}

func descendantNodes(node xml.Node, self bool) iter.Seq[xml.Node] {
	var traverse func(xml.Node, func(xml.Node) bool) bool
	traverse = func(curr xml.Node, yield func(xml.Node) bool) bool {
		for _, n := range getNodes(curr) {
			if !yield(n) {
				return false
			}
			if !traverse(n, yield) {
				return false
			}
		}
		return true
	}
	return func(yield func(xml.Node) bool) {
		if self && !yield(node) {
			return
		}
		traverse(node, yield)
	}
}

func ancestorNodes(node xml.Node, self bool) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		if self && !yield(node) {
			return
		}
		for p := node.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// siblingNodes yields the siblings after the context node, or before
// it in reverse order. Attributes and namespace nodes have no
// siblings.
func siblingNodes(node xml.Node, reverse bool) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		if !hasSiblings(node) {
			return
		}
		p := node.Parent()
		if p == nil {
			return
		}
		var (
			nodes = getNodes(p)
			pos   = node.Position()
		)
		if reverse {
			for i := pos - 1; i >= 0; i-- {
				if !yield(nodes[i]) {
					return
				}
			}
			return
		}
		for i := pos + 1; i < len(nodes); i++ {
			if !yield(nodes[i]) {
				return
			}
		}
	}
}

func hasSiblings(node xml.Node) bool {
	switch node.Type() {
	case xml.TypeAttribute, xml.TypeNamespace, xml.TypeDocument:
		return false
	default:
		return true
	}
}

func followingNodes(node xml.Node) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		for curr := anchorNode(node); curr != nil; curr = curr.Parent() {
			for sib := range siblingNodes(curr, false) {
				if !yield(sib) {
					return
				}
				for n := range descendantNodes(sib, false) {
					if !yield(n) {
						return
					}
				}
			}
		}
	}
}

func precedingNodes(node xml.Node) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		for curr := anchorNode(node); curr != nil; curr = curr.Parent() {
			for sib := range siblingNodes(curr, true) {
				for n := range reverseNodes(sib) {
					if !yield(n) {
						return
					}
				}
			}
		}
	}
}

// reverseNodes yields a subtree in reverse document order, deepest
// last child first, the subtree root last.
func reverseNodes(node xml.Node) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		nodes := getNodes(node)
		for i := len(nodes) - 1; i >= 0; i-- {
			for n := range reverseNodes(nodes[i]) {
				if !yield(n) {
					return
				}
			}
		}
		yield(node)
	}
}

// anchorNode gives the element the following and preceding axes walk
// from: attributes and namespace nodes borrow their element.
func anchorNode(node xml.Node) xml.Node {
	switch node.Type() {
	case xml.TypeAttribute, xml.TypeNamespace:
		return node.Parent()
	default:
		return node
	}
}

func attributeNodes(node xml.Node) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		el, ok := node.(*xml.Element)
		if !ok {
			return
		}
		for i := range el.Attrs {
			if !yield(&el.Attrs[i]) {
				return
			}
		}
	}
}

// namespaceNodes yields the namespaces in scope on an element, the
// nearest declaration of a prefix winning over outer ones.
func namespaceNodes(node xml.Node) iter.Seq[xml.Node] {
	return func(yield func(xml.Node) bool) {
		el, ok := node.(*xml.Element)
		if !ok {
			return
		}
		var (
			seen = make(map[string]struct{})
			pos  int
		)
		for curr := xml.Node(el); curr != nil; curr = curr.Parent() {
			e, ok := curr.(*xml.Element)
			if !ok {
				continue
			}
			for _, ns := range e.Namespaces {
				if _, ok := seen[ns.Prefix]; ok {
					continue
				}
				seen[ns.Prefix] = struct{}{}
				if !yield(makeNamespaceNode(el, ns, pos)) {
					return
				}
				pos++
			}
		}
	}
}

func makeNamespaceNode(parent *xml.Element, ns xml.NS, pos int) xml.Node {
	n := xml.NewNamespace(ns)
	xml.Attach(n, parent, pos)
	return n
}
