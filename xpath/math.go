package xpath

import (
	"math"
)

type binaryFunc func(left, right Sequence) (Sequence, error)

var binaryOp = map[rune]binaryFunc{
	opAdd: arith(func(a, b float64) float64 { return a + b }),
	opSub: arith(func(a, b float64) float64 { return a - b }),
	opMul: arith(func(a, b float64) float64 { return a * b }),
	opDiv: arith(func(a, b float64) float64 { return a / b }),
	opMod: arith(math.Mod),
	opEq:  equals(false),
	opNe:  equals(true),
	opLt:  compare(func(a, b float64) bool { return a < b }),
	opLe:  compare(func(a, b float64) bool { return a <= b }),
	opGt:  compare(func(a, b float64) bool { return a > b }),
	opGe:  compare(func(a, b float64) bool { return a >= b }),
}

// arith evaluates both operands as numbers. Division by zero and
// overflow follow float64 arithmetic, there is no error path.
func arith(do func(a, b float64) float64) binaryFunc {
	return func(left, right Sequence) (Sequence, error) {
		res := do(numberValue(left), numberValue(right))
		return Singleton(res), nil
	}
}

func equals(invert bool) binaryFunc {
	return func(left, right Sequence) (Sequence, error) {
		ok := equalValues(left, right, invert)
		return Singleton(ok), nil
	}
}

func compare(do func(a, b float64) bool) binaryFunc {
	return func(left, right Sequence) (Sequence, error) {
		ok := compareValues(left, right, do)
		return Singleton(ok), nil
	}
}

// isSet reports whether a sequence behaves as a node set in a
// comparison: it holds nodes, or came out of a path step empty.
func isSet(seq Sequence) bool {
	if seq.Empty() {
		return false
	}
	return !seq[0].Atomic()
}

// equalValues applies the existential comparison rules: when a node
// set is involved the comparison holds as soon as one node matches.
// Without node sets the comparison happens in the strongest type of
// the two operands, boolean before number before string.
func equalValues(left, right Sequence, invert bool) bool {
	switch {
	case isSet(left) && isSet(right):
		for _, a := range left {
			for _, b := range right {
				if eq := a.Node().Value() == b.Node().Value(); eq != invert {
					return true
				}
			}
		}
		return false
	case isSet(left):
		return equalSet(left, right.First(), invert)
	case isSet(right):
		return equalSet(right, left.First(), invert)
	default:
		if left.Empty() || right.Empty() {
			return false
		}
		var (
			a  = left.First().Value()
			b  = right.First().Value()
			eq bool
		)
		switch {
		case isBool(a) || isBool(b):
			eq = toBool(a) == toBool(b)
		case isNumber(a) || isNumber(b):
			eq = toFloat(a) == toFloat(b)
		default:
			eq = toString(a) == toString(b)
		}
		return eq != invert
	}
}

func equalSet(set Sequence, item Item, invert bool) bool {
	if item == nil {
		return false
	}
	value := item.Value()
	if isBool(value) {
		eq := toBool(value) == !set.Empty()
		return eq != invert
	}
	for _, it := range set {
		str := it.Node().Value()
		var eq bool
		if isNumber(value) {
			eq = toFloat(str) == toFloat(value)
		} else {
			eq = str == toString(value)
		}
		if eq != invert {
			return true
		}
	}
	return false
}

// compareValues applies the relational rules: node sets compare
// existentially, everything else numerically.
func compareValues(left, right Sequence, do func(a, b float64) bool) bool {
	switch {
	case isSet(left) && isSet(right):
		for _, a := range left {
			for _, b := range right {
				if do(toFloat(a.Node().Value()), toFloat(b.Node().Value())) {
					return true
				}
			}
		}
		return false
	case isSet(left):
		other := numberValue(right)
		for _, a := range left {
			if do(toFloat(a.Node().Value()), other) {
				return true
			}
		}
		return false
	case isSet(right):
		other := numberValue(left)
		for _, b := range right {
			if do(other, toFloat(b.Node().Value())) {
				return true
			}
		}
		return false
	default:
		return do(numberValue(left), numberValue(right))
	}
}

func isBool(value any) bool {
	_, ok := value.(bool)
	return ok
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, int, int64:
		return true
	default:
		return false
	}
}
