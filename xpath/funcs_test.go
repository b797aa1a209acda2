package xpath

import (
	"math"
	"testing"

	"github.com/midbel/query/xml"
)

func evalString(t *testing.T, doc xml.Node, expr string) any {
	t.Helper()
	got, err := Eval(doc, expr)
	if err != nil {
		t.Fatalf("%s: error evaluating expression: %s", expr, err)
	}
	return got
}

func TestStringFunctions(t *testing.T) {
	doc := parseDocument(t)
	tests := []struct {
		Expr     string
		Expected any
	}{
		{
			Expr:     "concat('foo', '-', 'bar')",
			Expected: "foo-bar",
		},
		{
			Expr:     "starts-with('bookstore', 'book')",
			Expected: true,
		},
		{
			Expr:     "contains('bookstore', 'News')",
			Expected: false,
		},
		{
			Expr:     "substring-before('1999/04/01', '/')",
			Expected: "1999",
		},
		{
			Expr:     "substring-after('1999/04/01', '/')",
			Expected: "04/01",
		},
		{
			Expr:     "substring-before('1999', '-')",
			Expected: "",
		},
		{
			Expr:     "substring('12345', 2, 3)",
			Expected: "234",
		},
		{
			Expr:     "substring('12345', 2)",
			Expected: "2345",
		},
		{
			Expr:     "substring('12345', 1.5, 2.6)",
			Expected: "234",
		},
		{
			Expr:     "substring('12345', 0, 3)",
			Expected: "12",
		},
		{
			Expr:     "string-length('hello')",
			Expected: 5.0,
		},
		{
			Expr:     "normalize-space('  a   b  ')",
			Expected: "a b",
		},
		{
			Expr:     "translate('bar', 'abc', 'ABC')",
			Expected: "BAr",
		},
		{
			Expr:     "translate('--aaa--', 'abc-', 'ABC')",
			Expected: "AAA",
		},
		{
			Expr:     "string(12)",
			Expected: "12",
		},
		{
			Expr:     "string(12.5)",
			Expected: "12.5",
		},
		{
			Expr:     "string(1 div 0)",
			Expected: "Infinity",
		},
		{
			Expr:     "string(0 div 0)",
			Expected: "NaN",
		},
		{
			Expr:     "string(true())",
			Expected: "true",
		},
	}
	for _, c := range tests {
		if got := evalString(t, doc, c.Expr); got != c.Expected {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Expr, c.Expected, got)
		}
	}
}

func TestNumberFunctions(t *testing.T) {
	doc := parseDocument(t)
	tests := []struct {
		Expr     string
		Expected any
	}{
		{
			Expr:     "floor(2.6)",
			Expected: 2.0,
		},
		{
			Expr:     "ceiling(2.1)",
			Expected: 3.0,
		},
		{
			Expr:     "round(2.5)",
			Expected: 3.0,
		},
		{
			Expr:     "round(-2.5)",
			Expected: -2.0,
		},
		{
			Expr:     "number('12.5')",
			Expected: 12.5,
		},
		{
			Expr:     "number(true())",
			Expected: 1.0,
		},
		{
			Expr:     "sum(//year)",
			Expected: 8016.0,
		},
	}
	for _, c := range tests {
		if got := evalString(t, doc, c.Expr); got != c.Expected {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Expr, c.Expected, got)
		}
	}
	got := evalString(t, doc, "number('not a number')")
	f, ok := got.(float64)
	if !ok || !math.IsNaN(f) {
		t.Errorf("number of garbage should be NaN, got %v", got)
	}
	got = evalString(t, doc, "number(//missing)")
	f, ok = got.(float64)
	if !ok || !math.IsNaN(f) {
		t.Errorf("number of empty set should be NaN, got %v", got)
	}
}

func TestBooleanFunctions(t *testing.T) {
	doc := parseDocument(t)
	tests := []struct {
		Expr     string
		Expected bool
	}{
		{
			Expr:     "boolean(//book)",
			Expected: true,
		},
		{
			Expr:     "boolean(//missing)",
			Expected: false,
		},
		{
			Expr:     "boolean('')",
			Expected: false,
		},
		{
			Expr:     "boolean('false')",
			Expected: true,
		},
		{
			Expr:     "boolean(0)",
			Expected: false,
		},
		{
			Expr:     "not(boolean(0 div 0))",
			Expected: true,
		},
		{
			Expr:     "true()",
			Expected: true,
		},
		{
			Expr:     "false()",
			Expected: false,
		},
	}
	for _, c := range tests {
		if got := evalString(t, doc, c.Expr); got != c.Expected {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Expr, c.Expected, got)
		}
	}
}

func TestNodeFunctions(t *testing.T) {
	doc := parseDocument(t)
	tests := []struct {
		Expr     string
		Expected any
	}{
		{
			Expr:     "name(//book[1])",
			Expected: "book",
		},
		{
			Expr:     "local-name(/*)",
			Expected: "bookstore",
		},
		{
			Expr:     "namespace-uri(//book[1])",
			Expected: "",
		},
		{
			Expr:     "name(//missing)",
			Expected: "",
		},
		{
			Expr:     "count(//book/title)",
			Expected: 4.0,
		},
	}
	for _, c := range tests {
		if got := evalString(t, doc, c.Expr); got != c.Expected {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Expr, c.Expected, got)
		}
	}
}

func TestLang(t *testing.T) {
	const doc = `<root xml:lang="en"><para>one</para><div xml:lang="fr-CA"><p>deux</p></div></root>`
	top, err := xml.ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	tests := []struct {
		Expr     string
		Expected any
	}{
		{
			Expr:     "count(//para[lang('en')])",
			Expected: 1.0,
		},
		{
			Expr:     "count(//p[lang('fr')])",
			Expected: 1.0,
		},
		{
			Expr:     "count(//p[lang('en')])",
			Expected: 0.0,
		},
	}
	for _, c := range tests {
		got, err := Eval(top, c.Expr)
		if err != nil {
			t.Fatalf("%s: error evaluating expression: %s", c.Expr, err)
		}
		if got != c.Expected {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Expr, c.Expected, got)
		}
	}
}

func TestPositionLast(t *testing.T) {
	doc := parseDocument(t)
	seq, err := Find(doc, "//book[position() = last()]/title")
	if err != nil {
		t.Fatalf("error evaluating expression: %s", err)
	}
	if seq.Len() != 1 || seq[0].Node().Value() != "Learning XML" {
		t.Errorf("want last title, got %v", seq)
	}
}
