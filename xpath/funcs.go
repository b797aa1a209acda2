package xpath

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/midbel/query/xml"
)

type builtinFunc func(ctx Context, args []Sequence) (Sequence, error)

type builtin struct {
	MinArgs int
	MaxArgs int
	Call    builtinFunc
}

func (b builtin) checkArity(ident string, got int) error {
	if got < b.MinArgs || (b.MaxArgs >= 0 && got > b.MaxArgs) {
		return FunctionArityError{
			Name: ident,
			Min:  b.MinArgs,
			Max:  b.MaxArgs,
			Got:  got,
		}
	}
	return nil
}

var builtins = map[string]builtin{
	"last":             {0, 0, callLast},
	"position":         {0, 0, callPosition},
	"count":            {1, 1, callCount},
	"name":             {0, 1, callName},
	"local-name":       {0, 1, callLocalName},
	"namespace-uri":    {0, 1, callNamespaceURI},
	"string":           {0, 1, callString},
	"concat":           {2, -1, callConcat},
	"starts-with":      {2, 2, callStartsWith},
	"contains":         {2, 2, callContains},
	"substring-before": {2, 2, callSubstringBefore},
	"substring-after":  {2, 2, callSubstringAfter},
	"substring":        {2, 3, callSubstring},
	"string-length":    {0, 1, callStringLength},
	"normalize-space":  {0, 1, callNormalizeSpace},
	"translate":        {3, 3, callTranslate},
	"boolean":          {1, 1, callBoolean},
	"not":              {1, 1, callNot},
	"true":             {0, 0, callTrue},
	"false":            {0, 0, callFalse},
	"lang":             {1, 1, callLang},
	"number":           {0, 1, callNumber},
	"sum":              {1, 1, callSum},
	"floor":            {0, 1, callFloor},
	"ceiling":          {0, 1, callCeiling},
	"round":            {0, 1, callRound},
}

// argOrContext gives the i-th argument when present, the context node
// otherwise. Most string and number functions default to the context
// node when called without argument.
func argOrContext(ctx Context, args []Sequence, i int) Sequence {
	if i < len(args) {
		return args[i]
	}
	return Singleton(ctx.Node)
}

// firstNode gives the first node in document order of the argument,
// or the context node when the function was called without argument.
func firstNode(ctx Context, args []Sequence) xml.Node {
	if len(args) == 0 {
		return ctx.Node
	}
	for _, it := range args[0].DocumentOrder() {
		if !it.Atomic() {
			return it.Node()
		}
	}
	return nil
}

func callLast(ctx Context, _ []Sequence) (Sequence, error) {
	return Singleton(float64(ctx.Size)), nil
}

func callPosition(ctx Context, _ []Sequence) (Sequence, error) {
	return Singleton(float64(ctx.Index)), nil
}

func callCount(_ Context, args []Sequence) (Sequence, error) {
	seq := args[0].Unique()
	return Singleton(float64(seq.Len())), nil
}

func callName(ctx Context, args []Sequence) (Sequence, error) {
	node := firstNode(ctx, args)
	if node == nil {
		return Singleton(""), nil
	}
	return Singleton(node.QualifiedName()), nil
}

func callLocalName(ctx Context, args []Sequence) (Sequence, error) {
	node := firstNode(ctx, args)
	if node == nil {
		return Singleton(""), nil
	}
	return Singleton(node.LocalName()), nil
}

func callNamespaceURI(ctx Context, args []Sequence) (Sequence, error) {
	node := firstNode(ctx, args)
	if node == nil {
		return Singleton(""), nil
	}
	return Singleton(node.Namespace()), nil
}

func callString(ctx Context, args []Sequence) (Sequence, error) {
	str := stringValue(argOrContext(ctx, args, 0))
	return Singleton(str), nil
}

func callConcat(_ Context, args []Sequence) (Sequence, error) {
	var str strings.Builder
	for i := range args {
		str.WriteString(stringValue(args[i]))
	}
	return Singleton(str.String()), nil
}

func callStartsWith(_ Context, args []Sequence) (Sequence, error) {
	ok := strings.HasPrefix(stringValue(args[0]), stringValue(args[1]))
	return Singleton(ok), nil
}

func callContains(_ Context, args []Sequence) (Sequence, error) {
	ok := strings.Contains(stringValue(args[0]), stringValue(args[1]))
	return Singleton(ok), nil
}

func callSubstringBefore(_ Context, args []Sequence) (Sequence, error) {
	var (
		str    = stringValue(args[0])
		needle = stringValue(args[1])
	)
	before, _, ok := strings.Cut(str, needle)
	if !ok {
		return Singleton(""), nil
	}
	return Singleton(before), nil
}

func callSubstringAfter(_ Context, args []Sequence) (Sequence, error) {
	var (
		str    = stringValue(args[0])
		needle = stringValue(args[1])
	)
	_, after, ok := strings.Cut(str, needle)
	if !ok {
		return Singleton(""), nil
	}
	return Singleton(after), nil
}

// callSubstring keeps the characters whose 1-based position p
// satisfies round(start) <= p < round(start) + round(length). The
// rounding makes fractional positions behave, and NaN bounds select
// nothing.
func callSubstring(_ Context, args []Sequence) (Sequence, error) {
	var (
		str   = []rune(stringValue(args[0]))
		start = roundHalfUp(numberValue(args[1]))
		until = math.Inf(1)
	)
	if len(args) > 2 {
		until = start + roundHalfUp(numberValue(args[2]))
	}
	var kept []rune
	for i, c := range str {
		pos := float64(i + 1)
		if pos >= start && pos < until {
			kept = append(kept, c)
		}
	}
	return Singleton(string(kept)), nil
}

func callStringLength(ctx Context, args []Sequence) (Sequence, error) {
	str := stringValue(argOrContext(ctx, args, 0))
	return Singleton(float64(utf8.RuneCountInString(str))), nil
}

func callNormalizeSpace(ctx Context, args []Sequence) (Sequence, error) {
	str := stringValue(argOrContext(ctx, args, 0))
	return Singleton(strings.Join(strings.Fields(str), " ")), nil
}

// callTranslate replaces each character found in the second argument
// by the character at the same position of the third, removing it when
// the third is shorter.
func callTranslate(_ Context, args []Sequence) (Sequence, error) {
	var (
		str  = stringValue(args[0])
		from = []rune(stringValue(args[1]))
		to   = []rune(stringValue(args[2]))
	)
	mapping := make(map[rune]rune, len(from))
	for i, c := range from {
		if _, ok := mapping[c]; ok {
			continue
		}
		if i < len(to) {
			mapping[c] = to[i]
		} else {
			mapping[c] = -1
		}
	}
	var out strings.Builder
	for _, c := range str {
		r, ok := mapping[c]
		if !ok {
			out.WriteRune(c)
			continue
		}
		if r >= 0 {
			out.WriteRune(r)
		}
	}
	return Singleton(out.String()), nil
}

func callBoolean(_ Context, args []Sequence) (Sequence, error) {
	return Singleton(booleanValue(args[0])), nil
}

func callNot(_ Context, args []Sequence) (Sequence, error) {
	return Singleton(!booleanValue(args[0])), nil
}

func callTrue(_ Context, _ []Sequence) (Sequence, error) {
	return Singleton(true), nil
}

func callFalse(_ Context, _ []Sequence) (Sequence, error) {
	return Singleton(false), nil
}

// callLang tests the language of the context node against the xml:lang
// attribute of the nearest ancestor that carries one. The match is
// case insensitive and ignores any suffix starting at a dash.
func callLang(ctx Context, args []Sequence) (Sequence, error) {
	var (
		want = stringValue(args[0])
		got  string
	)
	for node := ctx.Node; node != nil; node = node.Parent() {
		el, ok := node.(*xml.Element)
		if !ok {
			continue
		}
		attr, ok := el.GetAttribute("xml:lang")
		if !ok {
			continue
		}
		got = attr.Value()
		break
	}
	if got == "" {
		return Singleton(false), nil
	}
	got, want = strings.ToLower(got), strings.ToLower(want)
	if got == want {
		return Singleton(true), nil
	}
	return Singleton(strings.HasPrefix(got, want+"-")), nil
}

func callNumber(ctx Context, args []Sequence) (Sequence, error) {
	res := numberValue(argOrContext(ctx, args, 0))
	return Singleton(res), nil
}

func callSum(_ Context, args []Sequence) (Sequence, error) {
	var sum float64
	for _, it := range args[0] {
		sum += toFloat(it.Value())
	}
	return Singleton(sum), nil
}

func callFloor(ctx Context, args []Sequence) (Sequence, error) {
	res := numberValue(argOrContext(ctx, args, 0))
	return Singleton(math.Floor(res)), nil
}

func callCeiling(ctx Context, args []Sequence) (Sequence, error) {
	res := numberValue(argOrContext(ctx, args, 0))
	return Singleton(math.Ceil(res)), nil
}

func callRound(ctx Context, args []Sequence) (Sequence, error) {
	res := numberValue(argOrContext(ctx, args, 0))
	return Singleton(roundHalfUp(res)), nil
}

// roundHalfUp rounds to the nearest integer, halves away from minus
// infinity. NaN and the infinities pass through unchanged.
func roundHalfUp(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return math.Floor(value + 0.5)
}
