package xpath

import (
	"slices"

	"github.com/midbel/query/xml"
)

// Expr is one node of the compiled expression tree. An Expr is built
// once per compile, never mutated afterwards, and evaluated against a
// Context.
type Expr interface {
	find(Context) (Sequence, error)
}

type root struct{}

func (_ root) find(ctx Context) (Sequence, error) {
	top := ctx.Root()
	return Singleton(top.Node), nil
}

type current struct{}

func (_ current) find(ctx Context) (Sequence, error) {
	return Singleton(ctx.Node), nil
}

type wildcard struct{}

func (_ wildcard) find(ctx Context) (Sequence, error) {
	principal := ctx.Principal
	if principal == 0 {
		principal = xml.TypeElement
	}
	if ctx.Type() != principal {
		return nil, nil
	}
	return Singleton(ctx.Node), nil
}

// name is a name test: it matches when the context node is of the
// principal type and carries the wanted name. The prefix resolves
// against the caller supplied namespaces; nodes without a namespace
// only match when no default namespace was bound.
type name struct {
	xml.QName
}

func (n name) find(ctx Context) (Sequence, error) {
	principal := ctx.Principal
	if principal == 0 {
		principal = xml.TypeElement
	}
	if ctx.Type() != principal {
		return nil, nil
	}
	if principal == xml.TypeNamespace {
		if ctx.Node.LocalName() != n.Name {
			return nil, nil
		}
		return Singleton(ctx.Node), nil
	}
	uri := ctx.Namespaces[""]
	if n.Space != "" {
		u, err := ctx.ResolveNS(n.Space)
		if err != nil {
			return nil, err
		}
		uri = u
	}
	if principal == xml.TypeAttribute && n.Space == "" {
		uri = ""
	}
	if ctx.Node.Namespace() != uri {
		return nil, nil
	}
	if n.Name != "*" && ctx.Node.LocalName() != n.Name {
		return nil, nil
	}
	return Singleton(ctx.Node), nil
}

// kind is a node kind test: node(), text(), comment() or
// processing-instruction(), the latter optionally with a target.
type kind struct {
	kind   xml.NodeType
	target string
}

func (k kind) find(ctx Context) (Sequence, error) {
	if ctx.Type()&k.kind == 0 {
		return nil, nil
	}
	if k.target != "" && ctx.LocalName() != k.target {
		return nil, nil
	}
	return Singleton(ctx.Node), nil
}

type axis struct {
	kind string
	next Expr
}

func (a axis) find(ctx Context) (Sequence, error) {
	var (
		list Sequence
		sub  = ctx
	)
	sub.Principal = principalType(a.kind)
	for n := range axisNodes(a.kind, ctx.Node) {
		others, err := a.next.find(sub.Sub(n, 1, 1))
		if err != nil {
			return nil, err
		}
		list.Concat(others)
	}
	return list, nil
}

// step chains two path steps: the right hand side runs once for every
// node produced by the left hand side, and the merged result is
// deduplicated and put back in document order before it feeds the
// next step.
type step struct {
	curr Expr
	next Expr
}

func (s step) find(ctx Context) (Sequence, error) {
	is, err := s.curr.find(ctx)
	if err != nil {
		return nil, err
	}
	var list Sequence
	for i, n := range is {
		if n.Atomic() {
			continue
		}
		others, err := s.next.find(ctx.Sub(n.Node(), i+1, is.Len()))
		if err != nil {
			return nil, err
		}
		list.Concat(others)
	}
	return list.DocumentOrder(), nil
}

// filter narrows a node set with one predicate. Position and size are
// those of the set entering this predicate, not of the original step.
type filter struct {
	expr  Expr
	check Expr
}

func (f filter) find(ctx Context) (Sequence, error) {
	list, err := f.expr.find(ctx)
	if err != nil {
		return nil, err
	}
	var ret Sequence
	for j, n := range list {
		res, err := f.check.find(ctx.Sub(n.Node(), j+1, list.Len()))
		if err != nil {
			return nil, err
		}
		if keepItem(res, j+1) {
			ret.Append(n)
		}
	}
	return ret, nil
}

// keepItem decides whether a predicate keeps the current item: a
// number is a position test, everything else goes through the
// effective boolean value.
func keepItem(res Sequence, pos int) bool {
	if res.Empty() {
		return false
	}
	if res.Singleton() && res[0].Atomic() {
		switch value := res[0].Value().(type) {
		case float64:
			return value == float64(pos)
		case int:
			return value == pos
		case int64:
			return value == int64(pos)
		default:
			return toBool(value)
		}
	}
	return true
}

// index is the fast path for a literal positional predicate: out of
// range positions give an empty result, not an error.
type index struct {
	expr Expr
	pos  int
}

func (i index) find(ctx Context) (Sequence, error) {
	seq, err := i.expr.find(ctx)
	if err != nil {
		return nil, err
	}
	if i.pos < 1 || i.pos > seq.Len() {
		return nil, nil
	}
	return Singleton(seq[i.pos-1]), nil
}

type binary struct {
	left  Expr
	right Expr
	op    rune
}

func (b binary) find(ctx Context) (Sequence, error) {
	left, err := b.left.find(ctx)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case opAnd:
		if !left.True() {
			return Singleton(false), nil
		}
		right, err := b.right.find(ctx)
		if err != nil {
			return nil, err
		}
		return Singleton(right.True()), nil
	case opOr:
		if left.True() {
			return Singleton(true), nil
		}
		right, err := b.right.find(ctx)
		if err != nil {
			return nil, err
		}
		return Singleton(right.True()), nil
	}
	right, err := b.right.find(ctx)
	if err != nil {
		return nil, err
	}
	fn, ok := binaryOp[b.op]
	if !ok {
		return nil, ErrImplemented
	}
	return fn(left, right)
}

type reverse struct {
	expr Expr
}

func (r reverse) find(ctx Context) (Sequence, error) {
	seq, err := r.expr.find(ctx)
	if err != nil {
		return nil, err
	}
	return Singleton(-numberValue(seq)), nil
}

type literal struct {
	expr string
}

func (i literal) find(_ Context) (Sequence, error) {
	return Singleton(i.expr), nil
}

type number struct {
	expr float64
}

func (n number) find(_ Context) (Sequence, error) {
	return Singleton(n.expr), nil
}

type identifier struct {
	ident string
}

func (i identifier) find(ctx Context) (Sequence, error) {
	expr, err := ctx.ResolveVar(i.ident)
	if err != nil {
		return nil, err
	}
	return expr.find(ctx)
}

type call struct {
	ident string
	args  []Expr
}

func (c call) find(ctx Context) (Sequence, error) {
	fn, ok := builtins[c.ident]
	if !ok {
		return nil, UnknownFunctionError{Name: c.ident}
	}
	if err := fn.checkArity(c.ident, len(c.args)); err != nil {
		return nil, err
	}
	args := make([]Sequence, len(c.args))
	for i := range c.args {
		seq, err := c.args[i].find(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = seq
	}
	return fn.Call(ctx, args)
}

// union merges the results of its branches, removing duplicate nodes
// by identity and restoring document order.
type union struct {
	all []Expr
}

func (u union) find(ctx Context) (Sequence, error) {
	var list Sequence
	for i := range u.all {
		others, err := u.all[i].find(ctx)
		if err != nil {
			return nil, err
		}
		list.Concat(others)
	}
	return list.DocumentOrder(), nil
}

// value wraps a caller supplied binding so that variables resolve to
// plain expressions.
type value struct {
	seq Sequence
}

func NewValueFromLiteral(v any) Expr {
	switch x := v.(type) {
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint64:
		v = float64(x)
	case float32:
		v = float64(x)
	}
	return value{
		seq: Singleton(v),
	}
}

func NewValueFromNode(node xml.Node) Expr {
	return value{
		seq: Singleton(node),
	}
}

func NewValueFromSequence(seq Sequence) Expr {
	return value{
		seq: slices.Clone(seq),
	}
}

func (v value) find(_ Context) (Sequence, error) {
	return slices.Clone(v.seq), nil
}
