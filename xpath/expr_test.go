package xpath

import (
	"errors"
	"testing"

	"github.com/midbel/query/xml"
)

const document = `<?xml version="1.0" encoding="UTF-8"?>
<bookstore>
	<book category="cooking">
		<title lang="en">Everyday Italian</title>
		<author>Giada De Laurentiis</author>
		<year>2005</year>
		<price>30.00</price>
	</book>
	<book category="children">
		<title lang="en">Harry Potter</title>
		<author>J K. Rowling</author>
		<year>2005</year>
		<price>29.99</price>
	</book>
	<book category="web">
		<title lang="en">XQuery Kick Start</title>
		<author>James McGovern</author>
		<year>2003</year>
		<price>49.99</price>
	</book>
	<book category="web">
		<title lang="en">Learning XML</title>
		<author>Erik T. Ray</author>
		<year>2003</year>
		<price>39.95</price>
	</book>
</bookstore>
`

func parseDocument(t *testing.T) *xml.Document {
	t.Helper()
	doc, err := xml.ParseString(document)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	return doc
}

func TestFind(t *testing.T) {
	tests := []struct {
		Expr     string
		Expected []string
	}{
		{
			Expr:     "/bookstore/book/title",
			Expected: []string{"Everyday Italian", "Harry Potter", "XQuery Kick Start", "Learning XML"},
		},
		{
			Expr:     "//book[1]/title",
			Expected: []string{"Everyday Italian"},
		},
		{
			Expr:     "//book[last()]/title",
			Expected: []string{"Learning XML"},
		},
		{
			Expr:     "//book[position()>2]/title",
			Expected: []string{"XQuery Kick Start", "Learning XML"},
		},
		{
			Expr:     "//book[@category='cooking']/title",
			Expected: []string{"Everyday Italian"},
		},
		{
			Expr:     "//book[@category=\"web\"]/title",
			Expected: []string{"XQuery Kick Start", "Learning XML"},
		},
		{
			Expr:     "//title[text()='Harry Potter']",
			Expected: []string{"Harry Potter"},
		},
		{
			Expr:     "//title[@lang]",
			Expected: []string{"Everyday Italian", "Harry Potter", "XQuery Kick Start", "Learning XML"},
		},
		{
			Expr:     "//book[price>40]/title",
			Expected: []string{"XQuery Kick Start"},
		},
		{
			Expr:     "//book[year=2003][2]/title",
			Expected: []string{"Learning XML"},
		},
		{
			Expr:     "/bookstore/book[5]",
			Expected: []string{},
		},
		{
			Expr:     "//@category",
			Expected: []string{"cooking", "children", "web", "web"},
		},
		{
			Expr:     "//author/../title",
			Expected: []string{"Everyday Italian", "Harry Potter", "XQuery Kick Start", "Learning XML"},
		},
		{
			Expr:     "//title | //year",
			Expected: []string{"Everyday Italian", "2005", "Harry Potter", "2005", "XQuery Kick Start", "2003", "Learning XML", "2003"},
		},
		{
			Expr:     "//book[1]/title | //book[1]/title",
			Expected: []string{"Everyday Italian"},
		},
		{
			Expr:     "/bookstore/*/author",
			Expected: []string{"Giada De Laurentiis", "J K. Rowling", "James McGovern", "Erik T. Ray"},
		},
		{
			Expr:     "//book[2]/preceding-sibling::book/title",
			Expected: []string{"Everyday Italian"},
		},
		{
			Expr:     "//book[1]/following-sibling::book[1]/title",
			Expected: []string{"Harry Potter"},
		},
		{
			Expr:     "/bookstore/book[1]/title/ancestor::book/author",
			Expected: []string{"Giada De Laurentiis"},
		},
		{
			Expr:     "//year[.=2005]/ancestor-or-self::book/title",
			Expected: []string{"Everyday Italian", "Harry Potter"},
		},
		{
			Expr:     "/bookstore/book[3]/descendant::*",
			Expected: []string{"XQuery Kick Start", "James McGovern", "2003", "49.99"},
		},
		{
			Expr:     "//author[starts-with(., 'Erik')]",
			Expected: []string{"Erik T. Ray"},
		},
		{
			Expr:     "//book[contains(title, 'XML')]/title",
			Expected: []string{"Learning XML"},
		},
		{
			Expr:     "//div",
			Expected: []string{},
		},
	}

	doc := parseDocument(t)
	for _, c := range tests {
		seq, err := Find(doc, c.Expr)
		if err != nil {
			t.Errorf("%s: error evaluating expression: %s", c.Expr, err)
			continue
		}
		if seq.Len() != len(c.Expected) {
			t.Errorf("%s: number of nodes mismatched! want %d, got %d", c.Expr, len(c.Expected), seq.Len())
			continue
		}
		for i := range seq {
			got := seq[i].Node().Value()
			if got != c.Expected[i] {
				t.Errorf("%s: node %d mismatched! want %q, got %q", c.Expr, i, c.Expected[i], got)
			}
		}
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		Expr     string
		Expected any
	}{
		{
			Expr:     "count(//book)",
			Expected: 4.0,
		},
		{
			Expr:     "count(//book[1] | //book[1])",
			Expected: 1.0,
		},
		{
			Expr:     "floor(sum(//price))",
			Expected: 149.0,
		},
		{
			Expr:     "count(//book[@category='web'])",
			Expected: 2.0,
		},
		{
			Expr:     "2 + 3 * 4",
			Expected: 14.0,
		},
		{
			Expr:     "10 div 4",
			Expected: 2.5,
		},
		{
			Expr:     "10 mod 3",
			Expected: 1.0,
		},
		{
			Expr:     "-2 + 5",
			Expected: 3.0,
		},
		{
			Expr:     "(2 + 3) * 4",
			Expected: 20.0,
		},
		{
			Expr:     "count(//book) > 3 and count(//book) < 5",
			Expected: true,
		},
		{
			Expr:     "count(//missing) > 0 or count(//book) = 4",
			Expected: true,
		},
		{
			Expr:     "//book[1]/title = 'Everyday Italian'",
			Expected: true,
		},
		{
			Expr:     "//missing = 'anything'",
			Expected: false,
		},
		{
			Expr:     "string(//book[1]/year)",
			Expected: "2005",
		},
		{
			Expr:     "number(//book[1]/price)",
			Expected: 30.0,
		},
	}

	doc := parseDocument(t)
	for _, c := range tests {
		got, err := Eval(doc, c.Expr)
		if err != nil {
			t.Errorf("%s: error evaluating expression: %s", c.Expr, err)
			continue
		}
		if got != c.Expected {
			t.Errorf("%s: value mismatched! want %v, got %v", c.Expr, c.Expected, got)
		}
	}
}

func TestEvalVariable(t *testing.T) {
	doc := parseDocument(t)
	got, err := Eval(doc, "number($x) + 1", WithVariable("x", 42))
	if err != nil {
		t.Fatalf("error evaluating expression: %s", err)
	}
	if got != 43.0 {
		t.Errorf("value mismatched! want 43, got %v", got)
	}
}

func TestEvalUndefined(t *testing.T) {
	doc := parseDocument(t)

	_, err := Eval(doc, "$missing")
	var unbound UnboundVariableError
	if !errors.As(err, &unbound) || unbound.Name != "missing" {
		t.Errorf("want unbound variable error, got %v", err)
	}

	_, err = Eval(doc, "//ns:book")
	var prefix UnboundNamespaceError
	if !errors.As(err, &prefix) || prefix.Prefix != "ns" {
		t.Errorf("want unbound namespace error, got %v", err)
	}

	_, err = Eval(doc, "frobnicate(1)")
	var unknown UnknownFunctionError
	if !errors.As(err, &unknown) || unknown.Name != "frobnicate" {
		t.Errorf("want unknown function error, got %v", err)
	}

	_, err = Eval(doc, "count()")
	var arity FunctionArityError
	if !errors.As(err, &arity) || arity.Name != "count" {
		t.Errorf("want arity error, got %v", err)
	}
	if !errors.Is(err, ErrArgument) {
		t.Errorf("arity error should match ErrArgument, got %v", err)
	}
}

func TestEvalNamespace(t *testing.T) {
	const doc = `<root xmlns:b="urn:books"><b:item>one</b:item><item>two</item></root>`
	top, err := xml.ParseString(doc)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	seq, err := Find(top, "//b:item", WithNamespace("b", "urn:books"))
	if err != nil {
		t.Fatalf("error evaluating expression: %s", err)
	}
	if seq.Len() != 1 || seq[0].Node().Value() != "one" {
		t.Errorf("want single item one, got %v", seq)
	}
	seq, err = Find(top, "//item")
	if err != nil {
		t.Fatalf("error evaluating expression: %s", err)
	}
	if seq.Len() != 1 || seq[0].Node().Value() != "two" {
		t.Errorf("want single item two, got %v", seq)
	}
}
