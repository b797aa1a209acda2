package xpath

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/midbel/query/xml"
)

const (
	powLowest = iota
	powOr
	powAnd
	powEqual
	powCompare
	powAdd
	powMul
	powPrefix
	powUnion
	powStep
	powPred
	powCall
)

var bindings = map[rune]int{
	opOr:      powOr,
	opAnd:     powAnd,
	opEq:      powEqual,
	opNe:      powEqual,
	opGt:      powCompare,
	opGe:      powCompare,
	opLt:      powCompare,
	opLe:      powCompare,
	opAdd:     powAdd,
	opSub:     powAdd,
	opMul:     powMul,
	opDiv:     powMul,
	opMod:     powMul,
	opUnion:   powUnion,
	currLevel: powStep,
	anyLevel:  powStep,
	begPred:   powPred,
	begGrp:    powCall,
}

// namedOps maps operator names to their operator token. The scanner
// emits them as plain names and the compiler resolves them from the
// position of the token, so that elements named div or mod stay
// addressable.
var namedOps = map[string]rune{
	kwAnd: opAnd,
	kwOr:  opOr,
	kwDiv: opDiv,
	kwMod: opMod,
}

type Compiler struct {
	scan *Scanner
	curr Token
	peek Token

	Tracer

	infix  map[rune]func(Expr) (Expr, error)
	prefix map[rune]func() (Expr, error)
}

func NewCompiler(r io.Reader) *Compiler {
	cp := Compiler{
		scan:   Scan(r),
		Tracer: discardTracer{},
	}

	cp.infix = map[rune]func(Expr) (Expr, error){
		currLevel: cp.compileStep,
		anyLevel:  cp.compileDescendantStep,
		begPred:   cp.compileFilter,
		begGrp:    cp.compileCall,
		opAdd:     cp.compileBinary,
		opSub:     cp.compileBinary,
		opMul:     cp.compileBinary,
		opDiv:     cp.compileBinary,
		opMod:     cp.compileBinary,
		opEq:      cp.compileBinary,
		opNe:      cp.compileBinary,
		opGt:      cp.compileBinary,
		opGe:      cp.compileBinary,
		opLt:      cp.compileBinary,
		opLe:      cp.compileBinary,
		opAnd:     cp.compileBinary,
		opOr:      cp.compileBinary,
		opUnion:   cp.compileUnion,
	}
	cp.prefix = map[rune]func() (Expr, error){
		currLevel:  cp.compileRoot,
		anyLevel:   cp.compileDescendantRoot,
		Name:       cp.compileName,
		variable:   cp.compileVariable,
		currNode:   cp.compileCurrent,
		parentNode: cp.compileParent,
		attrNode:   cp.compileAttr,
		Literal:    cp.compileLiteral,
		Digit:      cp.compileNumber,
		opSub:      cp.compileReverse,
		opMul:      cp.compileName,
		begGrp:     cp.compileGroup,
	}

	cp.next()
	cp.next()
	return &cp
}

func CompileString(q string) (Expr, error) {
	return Compile(strings.NewReader(q))
}

func Compile(r io.Reader) (Expr, error) {
	cp := NewCompiler(r)
	return cp.Compile()
}

func (c *Compiler) Compile() (Expr, error) {
	expr, err := c.compileExpr(powLowest)
	if err != nil {
		return nil, err
	}
	if !c.done() {
		return nil, c.syntaxError(fmt.Sprintf("unexpected %s after expression", c.curr))
	}
	return expr, nil
}

func (c *Compiler) compileExpr(pow int) (Expr, error) {
	c.Enter("expr")
	defer c.Leave("expr")
	fn, ok := c.prefix[c.curr.Type]
	if !ok {
		return nil, c.syntaxError(fmt.Sprintf("unexpected %s at start of expression", c.curr))
	}
	left, err := fn()
	if err != nil {
		return nil, err
	}
	for !c.done() && pow < c.power() {
		fn, ok := c.infix[c.currentOp()]
		if !ok {
			return nil, c.syntaxError(fmt.Sprintf("unexpected %s in expression", c.curr))
		}
		left, err = fn(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *Compiler) compileRoot() (Expr, error) {
	c.Enter("root")
	defer c.Leave("root")

	c.next()
	if c.done() {
		return root{}, nil
	}
	next, err := c.compileExpr(powStep)
	if err != nil {
		return nil, err
	}
	expr := step{
		curr: root{},
		next: next,
	}
	return expr, nil
}

func (c *Compiler) compileDescendantRoot() (Expr, error) {
	c.Enter("descendant-root")
	defer c.Leave("descendant-root")

	c.next()
	next, err := c.compileExpr(powStep)
	if err != nil {
		return nil, err
	}
	expr := step{
		curr: root{},
		next: descendantStep(next),
	}
	return expr, nil
}

func (c *Compiler) compileStep(left Expr) (Expr, error) {
	c.Enter("step")
	defer c.Leave("step")

	c.next()
	next, err := c.compileExpr(powStep)
	if err != nil {
		return nil, err
	}
	expr := step{
		curr: left,
		next: next,
	}
	return expr, nil
}

func (c *Compiler) compileDescendantStep(left Expr) (Expr, error) {
	c.Enter("descendant-step")
	defer c.Leave("descendant-step")

	c.next()
	next, err := c.compileExpr(powStep)
	if err != nil {
		return nil, err
	}
	expr := step{
		curr: left,
		next: descendantStep(next),
	}
	return expr, nil
}

// descendantStep expands the // abbreviation to a walk over
// descendant-or-self::node() before the given step.
func descendantStep(next Expr) Expr {
	return step{
		curr: axis{
			kind: descendantSelfAxis,
			next: kind{kind: xml.TypeNode},
		},
		next: next,
	}
}

func (c *Compiler) compileName() (Expr, error) {
	c.Enter("name")
	defer c.Leave("name")

	if c.peek.Type == opAxis {
		return c.compileAxis()
	}
	expr, err := c.compileNameTest()
	if err != nil {
		return nil, err
	}
	expr = axis{
		kind: childAxis,
		next: expr,
	}
	return expr, nil
}

func (c *Compiler) compileAxis() (Expr, error) {
	c.Enter("axis")
	defer c.Leave("axis")

	a := axis{
		kind: c.getCurrentLiteral(),
	}
	if !isAxis(a.kind) {
		return nil, c.syntaxError(fmt.Sprintf("%s: unknown axis", a.kind))
	}
	c.next()
	c.next()
	expr, err := c.compileNameTest()
	if err != nil {
		return nil, err
	}
	a.next = expr
	return a, nil
}

func (c *Compiler) compileNameTest() (Expr, error) {
	if c.is(opMul) && c.peek.Type != Namespace {
		c.next()
		return wildcard{}, nil
	}
	if isKind(c.getCurrentLiteral()) && c.peek.Type == begGrp {
		return c.compileKind()
	}
	return c.compileQName()
}

func (c *Compiler) compileQName() (Expr, error) {
	if !c.is(Name) && !c.is(opMul) {
		return nil, c.syntaxError(fmt.Sprintf("unexpected %s in name test", c.curr))
	}
	qn := xml.LocalName(c.getCurrentLiteral())
	if c.is(opMul) {
		qn.Name = "*"
	}
	c.next()
	if c.is(Namespace) {
		c.next()
		qn.Space = qn.Name
		switch {
		case c.is(Name):
			qn.Name = c.getCurrentLiteral()
		case c.is(opMul):
			qn.Name = "*"
		default:
			return nil, c.syntaxError("name expected after namespace prefix")
		}
		c.next()
	}
	n := name{
		QName: qn,
	}
	return n, nil
}

func (c *Compiler) compileKind() (Expr, error) {
	c.Enter("kind")
	defer c.Leave("kind")
	var expr kind
	switch c.getCurrentLiteral() {
	case "node":
		expr.kind = xml.TypeNode
	case "text":
		expr.kind = xml.TypeText
	case "comment":
		expr.kind = xml.TypeComment
	case "processing-instruction":
		expr.kind = xml.TypeInstruction
	default:
		return nil, c.syntaxError(fmt.Sprintf("%s: kind test not supported", c.getCurrentLiteral()))
	}
	c.next()
	c.next()
	if expr.kind == xml.TypeInstruction && c.is(Literal) {
		expr.target = c.getCurrentLiteral()
		c.next()
	}
	if !c.is(endGrp) {
		return nil, c.syntaxError("missing ')' after kind test")
	}
	c.next()
	return expr, nil
}

func (c *Compiler) compileAttr() (Expr, error) {
	c.Enter("attribute")
	defer c.Leave("attribute")
	c.next()
	expr, err := c.compileNameTest()
	if err != nil {
		return nil, err
	}
	a := axis{
		kind: attributeAxis,
		next: expr,
	}
	return a, nil
}

func (c *Compiler) compileCurrent() (Expr, error) {
	c.Enter("current")
	defer c.Leave("current")
	c.next()
	return current{}, nil
}

func (c *Compiler) compileParent() (Expr, error) {
	c.Enter("parent")
	defer c.Leave("parent")
	c.next()
	expr := axis{
		kind: parentAxis,
		next: kind{kind: xml.TypeNode},
	}
	return expr, nil
}

func (c *Compiler) compileVariable() (Expr, error) {
	c.Enter("variable")
	defer c.Leave("variable")
	defer c.next()
	v := identifier{
		ident: c.getCurrentLiteral(),
	}
	return v, nil
}

func (c *Compiler) compileLiteral() (Expr, error) {
	c.Enter("literal")
	defer c.Leave("literal")
	defer c.next()
	i := literal{
		expr: c.getCurrentLiteral(),
	}
	return i, nil
}

func (c *Compiler) compileNumber() (Expr, error) {
	c.Enter("number")
	defer c.Leave("number")

	f, err := strconv.ParseFloat(c.getCurrentLiteral(), 64)
	if err != nil {
		return nil, c.syntaxError(fmt.Sprintf("%s: invalid number", c.getCurrentLiteral()))
	}
	c.next()
	n := number{
		expr: f,
	}
	return n, nil
}

func (c *Compiler) compileReverse() (Expr, error) {
	c.Enter("reverse")
	defer c.Leave("reverse")
	c.next()
	expr, err := c.compileExpr(powPrefix)
	if err != nil {
		return nil, err
	}
	r := reverse{
		expr: expr,
	}
	return r, nil
}

func (c *Compiler) compileGroup() (Expr, error) {
	c.Enter("group")
	defer c.Leave("group")
	c.next()
	expr, err := c.compileExpr(powLowest)
	if err != nil {
		return nil, err
	}
	if !c.is(endGrp) {
		return nil, c.syntaxError("missing ')' after expression")
	}
	c.next()
	return expr, nil
}

func (c *Compiler) compileFilter(left Expr) (Expr, error) {
	c.Enter("filter")
	defer c.Leave("filter")
	c.next()
	if c.is(Digit) && c.peek.Type == endPred {
		return c.compileIndex(left)
	}
	expr, err := c.compileExpr(powLowest)
	if err != nil {
		return nil, err
	}
	if !c.is(endPred) {
		return nil, c.syntaxError("missing ']' after predicate")
	}
	c.next()

	f := filter{
		expr:  left,
		check: expr,
	}
	return f, nil
}

func (c *Compiler) compileIndex(left Expr) (Expr, error) {
	c.Enter("index")
	defer c.Leave("index")
	p, err := strconv.Atoi(c.getCurrentLiteral())
	if err != nil {
		return c.compileFilter2(left)
	}
	i := index{
		expr: left,
		pos:  p,
	}
	c.next()
	if !c.is(endPred) {
		return nil, c.syntaxError("missing ']' after predicate")
	}
	c.next()
	return i, nil
}

// compileFilter2 handles the rare non integral number predicate that
// compileIndex gave up on.
func (c *Compiler) compileFilter2(left Expr) (Expr, error) {
	expr, err := c.compileNumber()
	if err != nil {
		return nil, err
	}
	if !c.is(endPred) {
		return nil, c.syntaxError("missing ']' after predicate")
	}
	c.next()
	f := filter{
		expr:  left,
		check: expr,
	}
	return f, nil
}

func (c *Compiler) compileCall(left Expr) (Expr, error) {
	c.Enter("call")
	defer c.Leave("call")
	if a, ok := left.(axis); ok {
		left = a.next
	}
	n, ok := left.(name)
	if !ok || n.Space != "" || n.Name == "*" {
		return nil, c.syntaxError("invalid function identifier")
	}
	fn := call{
		ident: n.Name,
	}
	c.next()
	for !c.done() && !c.is(endGrp) {
		arg, err := c.compileExpr(powLowest)
		if err != nil {
			return nil, err
		}
		fn.args = append(fn.args, arg)
		switch {
		case c.is(opSeq):
			c.next()
			if c.is(endGrp) {
				return nil, c.syntaxError("expected argument after ','")
			}
		case c.is(endGrp):
		default:
			return nil, c.syntaxError("expected ',' or ')' in argument list")
		}
	}
	if !c.is(endGrp) {
		return nil, c.syntaxError("missing ')' after argument list")
	}
	c.next()
	return fn, nil
}

func (c *Compiler) compileBinary(left Expr) (Expr, error) {
	c.Enter("binary")
	defer c.Leave("binary")
	var (
		op  = c.currentOp()
		pow = bindings[op]
	)
	c.next()
	next, err := c.compileExpr(pow)
	if err != nil {
		return nil, err
	}
	b := binary{
		left:  left,
		right: next,
		op:    op,
	}
	return b, nil
}

func (c *Compiler) compileUnion(left Expr) (Expr, error) {
	c.Enter("union")
	defer c.Leave("union")
	c.next()
	expr, err := c.compileExpr(powUnion)
	if err != nil {
		return nil, err
	}
	if u, ok := left.(union); ok {
		u.all = append(u.all, expr)
		return u, nil
	}
	var res union
	res.all = []Expr{left, expr}
	return res, nil
}

// currentOp resolves the current token to an operator, mapping named
// operators to their token when the name sits in operator position.
func (c *Compiler) currentOp() rune {
	if c.is(Name) {
		if op, ok := namedOps[c.getCurrentLiteral()]; ok {
			return op
		}
	}
	return c.curr.Type
}

func (c *Compiler) power() int {
	return bindings[c.currentOp()]
}

func (c *Compiler) getCurrentLiteral() string {
	return c.curr.Literal
}

func (c *Compiler) is(kind rune) bool {
	return c.curr.Type == kind
}

func (c *Compiler) done() bool {
	return c.is(EOF)
}

func (c *Compiler) next() {
	c.curr = c.peek
	c.peek = c.scan.Scan()
}

func (c *Compiler) syntaxError(cause string) error {
	return SyntaxError{
		Cause:    cause,
		Position: c.curr.Position,
	}
}

func isKind(ident string) bool {
	switch ident {
	case "node", "text", "comment", "processing-instruction":
		return true
	default:
		return false
	}
}
