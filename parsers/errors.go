package parsers

import (
	"errors"
	"fmt"
	"go/token"
)

// Error is a declaration error reported at a source position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf returns an Error at pos.
func Errorf(pos token.Pos, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// PositionedError is an Error resolved against its file set.
type PositionedError struct {
	Position token.Position
	Msg      string
}

func (e *PositionedError) Error() string {
	if !e.Position.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Position, e.Msg)
}

// Locate resolves the position of an Error in err. Other errors are returned unchanged.
func Locate(fset *token.FileSet, err error) error {
	var e *Error
	if fset == nil || !errors.As(err, &e) {
		return err
	}
	return &PositionedError{Position: fset.Position(e.Pos), Msg: e.Msg}
}
