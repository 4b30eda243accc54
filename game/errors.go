package game

import "fmt"

// Code classifies a rejected call
type Code string

const (
	CodeInvalidMove         Code = "INVALID_MOVE"
	CodeInvalidPlayerNum    Code = "INVALID_PLAYER_NUM"
	CodeInvalidPlayerID     Code = "INVALID_PLAYER_ID"
	CodeInvalidWinCondition Code = "INVALID_WIN_COND"
	CodeInvalidParams       Code = "INVALID_PARAMS"
)

// Error is returned by every rejected call. A rejected call leaves the game untouched.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is matches any Error with the same code, so errors.Is(err, ErrInvalidMove)
// holds whatever the detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidMove         = &Error{Code: CodeInvalidMove}
	ErrInvalidPlayerNum    = &Error{Code: CodeInvalidPlayerNum}
	ErrInvalidPlayerID     = &Error{Code: CodeInvalidPlayerID}
	ErrInvalidWinCondition = &Error{Code: CodeInvalidWinCondition}
	ErrInvalidParams       = &Error{Code: CodeInvalidParams}
)

func errorf(code Code, format string, args ...interface{}) error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func invalidMove(format string, args ...interface{}) error {
	return errorf(CodeInvalidMove, format, args...)
}
