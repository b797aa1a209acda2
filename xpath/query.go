package xpath

import (
	"io"
	"strings"

	"github.com/midbel/query/environ"
	"github.com/midbel/query/xml"
)

// Query is a compiled expression together with the bindings it will
// be evaluated with. A Query is safe to reuse across documents.
type Query struct {
	expr Expr

	namespaces map[string]string
	environ    environ.Environ[Expr]
	tracer     Tracer
}

type Option func(*Query)

// WithNamespace binds a prefix usable in name tests. Binding the
// empty prefix makes unprefixed name tests match that namespace.
func WithNamespace(prefix, uri string) Option {
	return func(q *Query) {
		q.namespaces[prefix] = uri
	}
}

// WithVariable binds $ident. The value can be an atomic value, a
// node, or an already built Expr.
func WithVariable(ident string, value any) Option {
	return func(q *Query) {
		var expr Expr
		switch value := value.(type) {
		case Expr:
			expr = value
		case xml.Node:
			expr = NewValueFromNode(value)
		case Sequence:
			expr = NewValueFromSequence(value)
		default:
			expr = NewValueFromLiteral(value)
		}
		q.environ.Define(ident, expr)
	}
}

func WithTracer(tracer Tracer) Option {
	return func(q *Query) {
		if tracer == nil {
			tracer = discardTracer{}
		}
		q.tracer = tracer
	}
}

func Build(query string, options ...Option) (*Query, error) {
	return BuildReader(strings.NewReader(query), options...)
}

func BuildReader(r io.Reader, options ...Option) (*Query, error) {
	q := Query{
		namespaces: make(map[string]string),
		environ:    environ.Empty[Expr](),
		tracer:     discardTracer{},
	}
	for _, opt := range options {
		opt(&q)
	}
	cp := NewCompiler(r)
	cp.Tracer = q.tracer
	expr, err := cp.Compile()
	if err != nil {
		return nil, err
	}
	q.expr = expr
	return &q, nil
}

// Find evaluates the query with node as context node and returns the
// matching items. Node results come back in document order without
// duplicates.
func (q *Query) Find(node xml.Node) (Sequence, error) {
	ctx := DefaultContext(node)
	ctx.Namespaces = q.namespaces
	ctx.Environ = environ.Enclosed(q.environ)
	seq, err := q.expr.find(ctx)
	if err != nil {
		return nil, err
	}
	if seq.Nodes() {
		seq = seq.DocumentOrder()
	}
	return seq, nil
}

// FindFrom evaluates the query once per context node and merges the
// results, deduplicated and in document order.
func (q *Query) FindFrom(nodes ...xml.Node) (Sequence, error) {
	var list Sequence
	for _, n := range nodes {
		seq, err := q.Find(n)
		if err != nil {
			return nil, err
		}
		list.Concat(seq)
	}
	if list.Nodes() {
		list = list.DocumentOrder()
	}
	return list, nil
}

// Eval evaluates the query and collapses the result to a plain value:
// nil for an empty result, the atomic value itself for a singleton,
// the sequence otherwise.
func (q *Query) Eval(node xml.Node) (any, error) {
	seq, err := q.Find(node)
	if err != nil {
		return nil, err
	}
	switch {
	case seq.Empty():
		return nil, nil
	case seq.Singleton() && seq[0].Atomic():
		return seq[0].Value(), nil
	default:
		return seq, nil
	}
}

// Find compiles and evaluates query against node in one call.
func Find(node xml.Node, query string, options ...Option) (Sequence, error) {
	q, err := Build(query, options...)
	if err != nil {
		return nil, err
	}
	return q.Find(node)
}

// Eval compiles and evaluates query against node, collapsing the
// result the way Query.Eval does.
func Eval(node xml.Node, query string, options ...Option) (any, error) {
	q, err := Build(query, options...)
	if err != nil {
		return nil, err
	}
	return q.Eval(node)
}
