package xpath

import (
	"io"
	"strconv"
	"strings"
)

// Debug renders the structure of a compiled expression, one
// constructor per tree node. The output is meant for humans chasing a
// compilation surprise, not for machines.
func Debug(expr Expr) string {
	var str strings.Builder
	debugExpr(&str, expr)
	return str.String()
}

func debugExpr(w io.Writer, expr Expr) {
	switch v := expr.(type) {
	case root:
		io.WriteString(w, "root")
	case current:
		io.WriteString(w, "current")
	case wildcard:
		io.WriteString(w, "wildcard")
	case name:
		io.WriteString(w, "name")
		io.WriteString(w, "(")
		if v.Space != "" {
			io.WriteString(w, v.Space)
			io.WriteString(w, ":")
		}
		io.WriteString(w, v.Name)
		io.WriteString(w, ")")
	case kind:
		io.WriteString(w, "kind")
		io.WriteString(w, "(")
		io.WriteString(w, v.kind.String())
		if v.target != "" {
			io.WriteString(w, ", ")
			io.WriteString(w, v.target)
		}
		io.WriteString(w, ")")
	case axis:
		io.WriteString(w, "axis")
		io.WriteString(w, "(")
		io.WriteString(w, v.kind)
		io.WriteString(w, ", ")
		debugExpr(w, v.next)
		io.WriteString(w, ")")
	case step:
		io.WriteString(w, "step")
		io.WriteString(w, "(")
		debugExpr(w, v.curr)
		io.WriteString(w, ", ")
		debugExpr(w, v.next)
		io.WriteString(w, ")")
	case filter:
		io.WriteString(w, "filter")
		io.WriteString(w, "(")
		debugExpr(w, v.expr)
		io.WriteString(w, ", ")
		debugExpr(w, v.check)
		io.WriteString(w, ")")
	case index:
		io.WriteString(w, "index")
		io.WriteString(w, "(")
		debugExpr(w, v.expr)
		io.WriteString(w, ", ")
		io.WriteString(w, strconv.Itoa(v.pos))
		io.WriteString(w, ")")
	case union:
		io.WriteString(w, "union")
		io.WriteString(w, "(")
		for i := range v.all {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			debugExpr(w, v.all[i])
		}
		io.WriteString(w, ")")
	case binary:
		io.WriteString(w, "binary")
		io.WriteString(w, "(")
		io.WriteString(w, debugOp(v.op))
		io.WriteString(w, ", ")
		debugExpr(w, v.left)
		io.WriteString(w, ", ")
		debugExpr(w, v.right)
		io.WriteString(w, ")")
	case reverse:
		io.WriteString(w, "reverse")
		io.WriteString(w, "(")
		debugExpr(w, v.expr)
		io.WriteString(w, ")")
	case literal:
		io.WriteString(w, "literal")
		io.WriteString(w, "(")
		io.WriteString(w, v.expr)
		io.WriteString(w, ")")
	case number:
		io.WriteString(w, "number")
		io.WriteString(w, "(")
		io.WriteString(w, strconv.FormatFloat(v.expr, 'f', -1, 64))
		io.WriteString(w, ")")
	case identifier:
		io.WriteString(w, "variable")
		io.WriteString(w, "(")
		io.WriteString(w, v.ident)
		io.WriteString(w, ")")
	case call:
		io.WriteString(w, "call")
		io.WriteString(w, "(")
		io.WriteString(w, v.ident)
		for i := range v.args {
			io.WriteString(w, ", ")
			debugExpr(w, v.args[i])
		}
		io.WriteString(w, ")")
	case value:
		io.WriteString(w, "value")
	default:
		io.WriteString(w, "unknown")
	}
}

func debugOp(op rune) string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "subtract"
	case opMul:
		return "multiply"
	case opDiv:
		return "divide"
	case opMod:
		return "modulo"
	case opEq:
		return "equal"
	case opNe:
		return "not-equal"
	case opGt:
		return "greater-than"
	case opGe:
		return "greater-eq"
	case opLt:
		return "lesser-than"
	case opLe:
		return "lesser-eq"
	case opAnd:
		return "and"
	case opOr:
		return "or"
	default:
		return "unknown"
	}
}
