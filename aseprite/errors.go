package aseprite

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is the cause of a ParseError
	// raised for an absent required key.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownTag is the cause of a ParseError raised for
	// an enumeration value outside of the closed set.
	ErrUnknownTag = errors.New("unknown enumeration tag")
	// ErrInvalidUTF8 is the cause of a ParseError raised
	// for input that is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// ParseError is returned by Parse for every kind of failure:
// malformed JSON, missing fields, type mismatches and unknown
// enumeration tags. Path is a JSON pointer to the offending
// value and is empty when the document could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("aseprite: parse: %v", e.Err)
	}

	return fmt.Sprintf("aseprite: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func missing(path string) error {
	return &ParseError{Path: path, Err: ErrMissingField}
}
