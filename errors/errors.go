package errors

import (
	"fmt"
	"strings"

	"minic/token"
)

type UnexpectedToken struct {
	Expected []token.Kind
	Got      token.Token
}

func (e UnexpectedToken) Error() string {
	kinds := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		kinds[i] = kind.String()
	}
	return fmt.Sprintf("expected %s, got %s '%s' at %d:%d",
		strings.Join(kinds, " or "), e.Got.Kind, e.Got.Lexeme,
		e.Got.Pos.Line, e.Got.Pos.Column)
}

type ExpectedExpression struct {
	Got token.Token
}

func (e ExpectedExpression) Error() string {
	return fmt.Sprintf("expected expression, got %s '%s' at %d:%d",
		e.Got.Kind, e.Got.Lexeme, e.Got.Pos.Line, e.Got.Pos.Column)
}

type DivisionByZero struct {
	Op string // "/" or "%"
}

func (e DivisionByZero) Error() string {
	if e.Op == "%" {
		return "modulo by zero"
	}
	return "division by zero"
}

type UndefinedName struct {
	Name string
}

func (e UndefinedName) Error() string {
	return fmt.Sprintf("undefined name '%s'", e.Name)
}

type UnknownLabel struct {
	Label string
}

func (e UnknownLabel) Error() string {
	return fmt.Sprintf("label not found: %s", e.Label)
}
