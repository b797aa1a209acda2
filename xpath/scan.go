package xpath

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

const (
	kwAnd = "and"
	kwOr  = "or"
	kwDiv = "div"
	kwMod = "mod"
)

const (
	EOF rune = -(1 + iota)
	Name
	Namespace // name:
	Literal
	Digit
	Invalid
)

const (
	currNode rune = -(iota + 1000)
	parentNode
	attrNode
	variable
	currLevel
	anyLevel
	begPred
	endPred
	begGrp
	endGrp
	opAxis
	opSeq
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opEq
	opNe
	opGt
	opGe
	opLt
	opLe
	opAnd
	opOr
	opUnion
)

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	switch t.Type {
	case opAxis:
		return "<axis>"
	case currNode:
		return "<current-node>"
	case parentNode:
		return "<parent-node>"
	case attrNode:
		return "<attribute>"
	case currLevel:
		return "<current-level>"
	case anyLevel:
		return "<any-level>"
	case begPred:
		return "<begin-predicate>"
	case endPred:
		return "<end-predicate>"
	case begGrp:
		return "<begin-group>"
	case endGrp:
		return "<end-group>"
	case opSeq:
		return "<sequence>"
	case opAdd:
		return "<add>"
	case opSub:
		return "<subtract>"
	case opMul:
		return "<multiply>"
	case opDiv:
		return "<divide>"
	case opMod:
		return "<modulo>"
	case opEq:
		return "<equal>"
	case opNe:
		return "<not-equal>"
	case opGt:
		return "<greater-than>"
	case opGe:
		return "<greater-eq>"
	case opLt:
		return "<lesser-than>"
	case opLe:
		return "<lesser-eq>"
	case opAnd:
		return "<and>"
	case opOr:
		return "<or>"
	case opUnion:
		return "<union>"
	case EOF:
		return "<eof>"
	case Digit:
		return fmt.Sprintf("number(%s)", t.Literal)
	case Name:
		return fmt.Sprintf("name(%s)", t.Literal)
	case Namespace:
		return fmt.Sprintf("namespace(%s)", t.Literal)
	case Literal:
		return fmt.Sprintf("literal(%s)", t.Literal)
	case variable:
		return fmt.Sprintf("variable(%s)", t.Literal)
	case Invalid:
		return "<invalid>"
	default:
		return "<unknown>"
	}
}

type Scanner struct {
	input *bufio.Reader
	char  rune
	eof   bool
	str   bytes.Buffer

	Position
	old Position
}

func Scan(r io.Reader) *Scanner {
	scan := &Scanner{
		input: bufio.NewReader(r),
	}
	scan.Line = 1
	scan.read()
	return scan
}

func (s *Scanner) Scan() Token {
	s.skipBlank()

	var tok Token
	tok.Position = s.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}
	s.str.Reset()

	switch {
	case isOperator(s.char):
		s.scanOperator(&tok)
	case isDelimiter(s.char):
		s.scanDelimiter(&tok)
	case s.char == arobase:
		s.scanAttr(&tok)
	case s.char == apos || s.char == quote:
		s.scanLiteral(&tok)
	case s.char == dollar:
		s.scanVariable(&tok)
	case unicode.IsLetter(s.char) || s.char == underscore:
		s.scanIdent(&tok)
	case unicode.IsDigit(s.char):
		s.scanNumber(&tok)
	default:
		tok.Type = Invalid
		tok.Literal = string(s.char)
		s.read()
	}
	return tok
}

func (s *Scanner) scanOperator(tok *Token) {
	switch k := s.peek(); s.char {
	case plus:
		tok.Type = opAdd
	case dash:
		tok.Type = opSub
	case star:
		tok.Type = opMul
	case pipe:
		tok.Type = opUnion
	case equal:
		tok.Type = opEq
	case bang:
		tok.Type = Invalid
		tok.Literal = string(s.char)
		if k == equal {
			s.read()
			tok.Type = opNe
		}
	case langle:
		tok.Type = opLt
		if k == equal {
			s.read()
			tok.Type = opLe
		}
	case rangle:
		tok.Type = opGt
		if k == equal {
			s.read()
			tok.Type = opGe
		}
	case lparen:
		tok.Type = begGrp
	case rparen:
		tok.Type = endGrp
	default:
		tok.Type = Invalid
		tok.Literal = string(s.char)
	}
	s.read()
}

func (s *Scanner) scanDelimiter(tok *Token) {
	switch k := s.peek(); s.char {
	case colon:
		tok.Type = Namespace
		if k == colon {
			s.read()
			tok.Type = opAxis
		}
	case dot:
		if unicode.IsDigit(k) {
			s.scanNumber(tok)
			return
		}
		tok.Type = currNode
		if k == dot {
			s.read()
			tok.Type = parentNode
		}
	case comma:
		tok.Type = opSeq
	case lsquare:
		tok.Type = begPred
	case rsquare:
		tok.Type = endPred
	case slash:
		tok.Type = currLevel
		if k == slash {
			s.read()
			tok.Type = anyLevel
		}
	default:
		tok.Type = Invalid
		tok.Literal = string(s.char)
	}
	s.read()
}

func (s *Scanner) scanLiteral(tok *Token) {
	quote := s.char
	s.read()
	for !s.done() && s.char != quote {
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.str.String()
	if s.char != quote {
		tok.Type = Invalid
	}
	s.read()
}

func (s *Scanner) scanAttr(tok *Token) {
	tok.Type = attrNode
	s.read()
}

func (s *Scanner) scanNumber(tok *Token) {
	for !s.done() && unicode.IsDigit(s.char) {
		s.write()
		s.read()
	}
	if s.char == dot {
		s.write()
		s.read()
		for !s.done() && unicode.IsDigit(s.char) {
			s.write()
			s.read()
		}
	}
	tok.Type = Digit
	tok.Literal = s.str.String()
}

func (s *Scanner) scanVariable(tok *Token) {
	s.read()
	for !s.done() && isIdent(s.char) {
		s.write()
		s.read()
	}
	tok.Type = variable
	tok.Literal = s.str.String()
	if tok.Literal == "" {
		tok.Type = Invalid
	}
}

// scanIdent scans a name. Operator names (and, or, div, mod) are kept
// as plain names: the compiler decides from the position of the token
// whether a name is an operator, so that elements named div or mod can
// still be queried.
func (s *Scanner) scanIdent(tok *Token) {
	for !s.done() && isIdent(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Name
	tok.Literal = s.str.String()
}

func (s *Scanner) skipBlank() {
	for unicode.IsSpace(s.char) {
		s.read()
	}
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) read() {
	s.old = s.Position
	if s.char == '\n' {
		s.Column = 0
		s.Line++
	}
	s.Column++
	c, _, err := s.input.ReadRune()
	if err != nil {
		s.char = utf8.RuneError
		s.eof = true
	} else {
		s.char = c
	}
}

func (s *Scanner) peek() rune {
	defer s.input.UnreadRune()
	c, _, _ := s.input.ReadRune()
	return c
}

func (s *Scanner) done() bool {
	return s.eof
}

const (
	langle     = '<'
	rangle     = '>'
	lsquare    = '['
	rsquare    = ']'
	lparen     = '('
	rparen     = ')'
	colon      = ':'
	quote      = '"'
	apos       = '\''
	slash      = '/'
	bang       = '!'
	equal      = '='
	dash       = '-'
	underscore = '_'
	dot        = '.'
	arobase    = '@'
	comma      = ','
	plus       = '+'
	star       = '*'
	pipe       = '|'
	dollar     = '$'
)

func isIdent(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) ||
		c == dash || c == underscore
}

func isDelimiter(c rune) bool {
	return c == comma || c == dot || c == slash || c == colon ||
		c == lsquare || c == rsquare
}

func isOperator(c rune) bool {
	return c == plus || c == dash || c == star || c == pipe ||
		c == equal || c == bang || c == langle || c == rangle ||
		c == lparen || c == rparen
}
