package xml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser builds a Document from serialized xml. Tokenization is
// delegated to encoding/xml; the parser only keeps track of namespace
// scopes so that prefixes survive the round trip.
type Parser struct {
	dec *xml.Decoder

	KeepComments bool
	TrimSpace    bool
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		dec:          xml.NewDecoder(r),
		KeepComments: true,
	}
}

func ParseString(str string) (*Document, error) {
	return ParseReader(strings.NewReader(str))
}

func ParseReader(r io.Reader) (*Document, error) {
	return NewParser(r).Parse()
}

func ParseFile(file string) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseReader(r)
}

func (p *Parser) Parse() (*Document, error) {
	var (
		doc    Document
		stack  []*Element
		scopes = []map[string]string{
			{"xml": "http://www.w3.org/XML/1998/namespace"},
		}
	)
	doc.Version = "1.0"
	doc.Encoding = "UTF-8"

	appendNode := func(node Node) {
		if len(stack) == 0 {
			doc.Append(node)
			return
		}
		stack[len(stack)-1].Append(node)
	}

	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			scope := enterScope(scopes[len(scopes)-1], tok.Attr)
			scopes = append(scopes, scope)

			el := NewElement(makeName(tok.Name, scope))
			for _, a := range tok.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					el.Namespaces = append(el.Namespaces, makeNS(a))
					continue
				}
				el.SetAttribute(NewAttribute(makeName(a.Name, scope), a.Value))
			}
			appendNode(el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected closing element %s", tok.Name.Local)
			}
			stack = stack[:len(stack)-1]
			scopes = scopes[:len(scopes)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			str := string(tok)
			if p.TrimSpace {
				str = strings.TrimSpace(str)
			}
			if strings.TrimSpace(str) == "" {
				continue
			}
			appendNode(NewText(str))
		case xml.Comment:
			if p.KeepComments {
				appendNode(NewComment(string(tok)))
			}
		case xml.ProcInst:
			if tok.Target == "xml" {
				continue
			}
			appendNode(NewInstruction(tok.Target, string(tok.Inst)))
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("missing closing element %s", stack[len(stack)-1].QualifiedName())
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return &doc, nil
}

func enterScope(parent map[string]string, attrs []xml.Attr) map[string]string {
	var (
		scope  = parent
		copied bool
	)
	for _, a := range attrs {
		if a.Name.Space != "xmlns" && !(a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		if !copied {
			next := make(map[string]string, len(parent)+1)
			for k, v := range parent {
				next[k] = v
			}
			scope, copied = next, true
		}
		ns := makeNS(a)
		scope[ns.Prefix] = ns.Uri
	}
	return scope
}

func makeNS(a xml.Attr) NS {
	if a.Name.Space == "xmlns" {
		return NS{
			Prefix: a.Name.Local,
			Uri:    a.Value,
		}
	}
	return NS{
		Uri: a.Value,
	}
}

// makeName recovers the original prefix of a name: encoding/xml
// rewrites the name space to the resolved uri, so the prefix is found
// back from the declarations in scope. Undeclared prefixes, xml:
// among them, come through verbatim and resolve the other way round.
func makeName(name xml.Name, scope map[string]string) QName {
	if name.Space == "" {
		return LocalName(name.Local)
	}
	for prefix, uri := range scope {
		if uri == name.Space && prefix != "" {
			return ExpandedName(name.Local, prefix, name.Space)
		}
	}
	if uri, ok := scope[name.Space]; ok {
		return ExpandedName(name.Local, name.Space, uri)
	}
	return ExpandedName(name.Local, "", name.Space)
}
