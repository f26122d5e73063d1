package sensitivity

import (
	"errors"
	"fmt"
)

// ErrNoTables is returned when a sequence of tables is empty.
var ErrNoTables = errors.New("no sensitivity tables given")

// MissingColumnError reports a column that a table does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// ShapeMismatchError reports a table whose columns do not match
// what the selection or the parameter list requires.
type ShapeMismatchError struct {
	Column string
	Reason string

	// Want and Got are only set when the mismatch is a count.
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	msg := "shape mismatch"
	if e.Column != "" {
		msg += fmt.Sprintf(" in column %q", e.Column)
	}
	msg += ": " + e.Reason
	if e.Want != 0 || e.Got != 0 {
		msg += fmt.Sprintf(" (want %d, got %d)", e.Want, e.Got)
	}
	return msg
}

// TitleCountMismatchError reports a subplot title list whose length
// differs from the number of parameters.
type TitleCountMismatchError struct {
	Params int
	Titles int
}

func (e *TitleCountMismatchError) Error() string {
	return fmt.Sprintf(
		"%d subplot titles given for %d parameters", e.Titles, e.Params,
	)
}

// CheckTitles returns a TitleCountMismatchError unless there is
// exactly one title per parameter.
func CheckTitles(params []string, titles []string) error {
	if len(titles) != len(params) {
		return &TitleCountMismatchError{Params: len(params), Titles: len(titles)}
	}
	return nil
}
