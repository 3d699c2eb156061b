package pic

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrIO indicates the underlying stream could not be read or seeked.
	ErrIO = stderrors.New("i/o error")
	// ErrFormat indicates truncated or malformed container data.
	ErrFormat = stderrors.New("format error")
	// ErrResource indicates a sink could not accept a decoded sheet.
	ErrResource = stderrors.New("resource error")
)

// Error carries the kind of a failure together with where in the container it
// happened. Sheet, Tile and Offset are -1 when unknown.
type Error struct {
	Kind   error
	Op     string
	Sheet  int
	Tile   int
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("pic: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	var where []string
	if e.Sheet >= 0 {
		where = append(where, fmt.Sprintf("sheet %d", e.Sheet))
	}
	if e.Tile >= 0 {
		where = append(where, fmt.Sprintf("tile %d", e.Tile))
	}
	if e.Offset >= 0 {
		where = append(where, fmt.Sprintf("at offset %d", e.Offset))
	}
	if len(where) > 0 {
		b.WriteString(strings.Join(where, " "))
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.Error())
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Sheet: -1, Tile: -1, Offset: -1, Err: err}
}

// readError classifies a failed read. Running out of data means the container
// is truncated; anything else is a failure of the stream itself.
func readError(op string, off int64, err error) *Error {
	kind := ErrIO
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		kind = ErrFormat
	}
	e := newError(kind, op, err)
	e.Offset = off
	return e
}

func formatError(op string, off int64, format string, args ...interface{}) *Error {
	e := newError(ErrFormat, op, fmt.Errorf(format, args...))
	e.Offset = off
	return e
}

// withSheet fills in the sheet index on err if it is an *Error that doesn't
// have one yet.
func withSheet(err error, sheet int) error {
	var e *Error
	if stderrors.As(err, &e) && e.Sheet < 0 {
		e.Sheet = sheet
	}
	return err
}

// IsFormat reports whether err was caused by malformed or truncated data.
func IsFormat(err error) bool { return stderrors.Is(err, ErrFormat) }

// IsIO reports whether err was caused by the underlying stream.
func IsIO(err error) bool { return stderrors.Is(err, ErrIO) }

// IsResource reports whether err was caused by an output sink.
func IsResource(err error) bool { return stderrors.Is(err, ErrResource) }
