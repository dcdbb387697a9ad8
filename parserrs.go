package formula

import (
	"errors"
	"strconv"
)

// Messages carried by syntax errors.
const (
	MsgUnexpectedChar = "Unexpected character"
	MsgUnexpectedEnd  = "Unexpected end of input"
	MsgExpectedClose  = "Expected ')'"
	MsgExpectedArgEnd = "Expected ')' after function argument"
	MsgExpectedBar    = "Expected closing '|'"
	MsgUnknownIdent   = "Unknown identifier"
	MsgOutOfMemory    = "Out of memory"
)

// Sentinels that syntax errors match with errors.Is.
var (
	ErrUnexpectedChar = errors.New("unexpected character")
	ErrUnexpectedEnd  = errors.New("unexpected end of input")
	ErrBracket        = errors.New("unclosed bracket")
	ErrUnknownIdent   = errors.New("unknown identifier")
	ErrOutOfMemory    = errors.New("out of memory")
)

// maxErrLen bounds the length of a rendered error message.
const maxErrLen = 127

// SyntaxError is an error from parsing a formula. It implements InputError.
type SyntaxError struct {
	// Msg describes the failure.
	Msg string
	// Col is the byte offset of the parser when the failure occurred.
	Col int
}

// Error renders the error as "<message> at position <offset>".
func (err *SyntaxError) Error() string {
	s := err.Msg + " at position " + strconv.Itoa(err.Col)
	if len(s) > maxErrLen {
		s = s[:maxErrLen]
	}
	return s
}

// Pos returns the byte offset of the error.
func (err *SyntaxError) Pos() int {
	return err.Col
}

// Is reports whether the error belongs to the category of target.
func (err *SyntaxError) Is(target error) bool {
	switch target {
	case ErrUnexpectedChar:
		return err.Msg == MsgUnexpectedChar
	case ErrUnexpectedEnd:
		return err.Msg == MsgUnexpectedEnd
	case ErrBracket:
		return err.Msg == MsgExpectedClose || err.Msg == MsgExpectedArgEnd || err.Msg == MsgExpectedBar
	case ErrUnknownIdent:
		return err.Msg == MsgUnknownIdent
	case ErrOutOfMemory:
		return err.Msg == MsgOutOfMemory
	}
	return false
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the input at which the error was
	// detected.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)
