package parser

import (
	stderrors "errors"
	"fmt"
	"os"

	"contractabi/grammar"
	"contractabi/internal/ast"
	"contractabi/internal/errors"

	"github.com/alecthomas/participle/v2"
)

// ParseError is a syntax or link failure found while building a Program.
type ParseError struct {
	Message  string
	Position ast.Position
	Length   int
	Code     string

	// diagnostic keeps the notes and suggestions of errors built by this package.
	diagnostic *errors.CompilerError
}

func newParseError(ce errors.CompilerError) ParseError {
	return ParseError{
		Message:    ce.Message,
		Position:   ce.Position,
		Length:     ce.Length,
		Code:       ce.Code,
		diagnostic: &ce,
	}
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// CompilerError converts the parse error into a reporter diagnostic.
func (e ParseError) CompilerError() errors.CompilerError {
	if e.diagnostic != nil {
		return *e.diagnostic
	}
	err := errors.NewSemanticError(e.Code, e.Message, e.Position)
	if e.Length > 0 {
		err = err.WithLength(e.Length)
	}
	return err.Build()
}

func ParseFile(path string) (*ast.Program, []ParseError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	program, parseErrors := ParseSource(path, string(source))
	return program, parseErrors, nil
}

// ParseSource parses a declaration file and lowers it into a linked Program.
// A syntax error yields a nil Program. Duplicate declarations and cyclic
// inheritance are reported alongside a Program that is still usable.
func ParseSource(path string, source string) (*ast.Program, []ParseError) {
	file, err := grammar.ParseString(path, source)
	if err != nil {
		return nil, []ParseError{syntaxError(path, err)}
	}

	l := newLowerer(path)
	l.decls(file.Decls, ast.NoElement)

	for _, err := range l.program.Link() {
		l.linkError(err)
	}

	return l.program, l.errors
}

func syntaxError(path string, err error) ParseError {
	var perr participle.Error
	if stderrors.As(err, &perr) {
		pos := perr.Position()
		if pos.Filename == "" {
			pos.Filename = path
		}
		return newParseError(errors.SyntaxError(perr.Message(),
			ast.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}))
	}
	return newParseError(errors.SyntaxError(err.Error(), ast.Position{Filename: path, Line: 1, Column: 1}))
}

func (l *lowerer) linkError(err error) {
	var dup *ast.DuplicateDeclarationError
	var cyclic *ast.CyclicInheritanceError

	switch {
	case stderrors.As(err, &dup):
		l.errors = append(l.errors, newParseError(errors.DuplicateDeclaration(dup.Name, dup.Pos, dup.Previous)))
	case stderrors.As(err, &cyclic):
		l.errors = append(l.errors, newParseError(errors.CyclicInheritance(cyclic.Class, cyclic.Chain, cyclic.Pos)))
	default:
		l.errors = append(l.errors, newParseError(errors.SyntaxError(err.Error(), ast.Position{Filename: l.program.Filename})))
	}
}
