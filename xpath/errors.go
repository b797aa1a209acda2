package xpath

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax      = errors.New("invalid syntax")
	ErrType        = errors.New("invalid type")
	ErrUndefined   = errors.New("undefined")
	ErrArgument    = errors.New("invalid number of argument(s)")
	ErrImplemented = errors.New("not implemented")
)

// SyntaxError reports a malformed expression together with the
// position of the offending token. It is always fatal to the call.
type SyntaxError struct {
	Cause string
	Position
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Position, e.Cause)
}

func (e SyntaxError) Unwrap() error {
	return ErrSyntax
}

type UnboundVariableError struct {
	Name string
}

func (e UnboundVariableError) Error() string {
	return fmt.Sprintf("$%s: unbound variable", e.Name)
}

func (e UnboundVariableError) Unwrap() error {
	return ErrUndefined
}

type UnboundNamespaceError struct {
	Prefix string
}

func (e UnboundNamespaceError) Error() string {
	return fmt.Sprintf("%s: unbound namespace prefix", e.Prefix)
}

func (e UnboundNamespaceError) Unwrap() error {
	return ErrUndefined
}

type UnknownFunctionError struct {
	Name string
}

func (e UnknownFunctionError) Error() string {
	return fmt.Sprintf("%s: unknown function", e.Name)
}

func (e UnknownFunctionError) Unwrap() error {
	return ErrUndefined
}

// FunctionArityError reports a builtin called with the wrong number
// of arguments. Max below zero means the function is variadic.
type FunctionArityError struct {
	Name string
	Min  int
	Max  int
	Got  int
}

func (e FunctionArityError) Error() string {
	switch {
	case e.Max < 0:
		return fmt.Sprintf("%s: at least %d argument(s) expected, got %d", e.Name, e.Min, e.Got)
	case e.Min == e.Max:
		return fmt.Sprintf("%s: %d argument(s) expected, got %d", e.Name, e.Min, e.Got)
	default:
		return fmt.Sprintf("%s: between %d and %d argument(s) expected, got %d", e.Name, e.Min, e.Max, e.Got)
	}
}

func (e FunctionArityError) Unwrap() error {
	return ErrArgument
}
