package xpath

import (
	"github.com/midbel/query/xml"

	"github.com/midbel/query/environ"
)

// Context is the snapshot a sub expression is evaluated against: the
// context node, its 1-based position within the node set being
// traversed, the size of that set, and the caller supplied bindings.
// Bindings are never mutated during an evaluation.
type Context struct {
	xml.Node
	Index int
	Size  int

	// Principal is the node type name tests match on this step:
	// attributes on the attribute axis, namespace nodes on the
	// namespace axis, elements everywhere else.
	Principal xml.NodeType

	Namespaces map[string]string
	environ.Environ[Expr]
}

func DefaultContext(node xml.Node) Context {
	ctx := createContext(node, 1, 1)
	ctx.Environ = environ.Empty[Expr]()
	return ctx
}

func createContext(node xml.Node, pos, size int) Context {
	return Context{
		Node:  node,
		Index: pos,
		Size:  size,
	}
}

// Sub derives the context for one node of a node set, keeping the
// caller supplied bindings.
func (c Context) Sub(node xml.Node, pos, size int) Context {
	ctx := createContext(node, pos, size)
	ctx.Principal = c.Principal
	ctx.Namespaces = c.Namespaces
	ctx.Environ = c.Environ
	return ctx
}

func (c Context) Root() Context {
	if c.Node == nil {
		return c
	}
	return c.Sub(xml.Root(c.Node), 1, 1)
}

// ResolveNS maps a name test prefix to its uri. The default namespace
// only applies when the caller bound the empty prefix explicitly.
func (c Context) ResolveNS(prefix string) (string, error) {
	uri, ok := c.Namespaces[prefix]
	if !ok {
		return "", UnboundNamespaceError{Prefix: prefix}
	}
	return uri, nil
}

func (c Context) ResolveVar(ident string) (Expr, error) {
	if c.Environ == nil {
		return nil, UnboundVariableError{Name: ident}
	}
	expr, err := c.Environ.Resolve(ident)
	if err != nil {
		return nil, UnboundVariableError{Name: ident}
	}
	return expr, nil
}
