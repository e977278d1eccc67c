package shapecheck

import "errors"

// Lines is a recursively nested block of text: either a single Line or an
// ordered List of Lines, nested one indent level per list. It exists purely
// for rendering error details.
type Lines interface {
	lines()
}

// Line is one line of detail text.
type Line string

func (Line) lines() {}

// List is an ordered group of nested Lines.
type List []Lines

func (List) lines() {}

// Detail is one labeled detail attached to an Error, such as the missing
// fields of a record or the length mismatch of a tuple.
type Detail struct {
	Label string
	Value Lines
}

// Child is one cause of an aggregate Error. Label is empty for unlabeled
// children.
type Child struct {
	Label string
	Err   *Error
}

// Error is an immutable tree describing one validation failure and its
// causes. A node is created exactly where a mismatch is discovered and is
// never mutated afterwards, so errors are safe to share across goroutines.
//
// Children preserve discovery order: field declaration order for records,
// variant declaration order for unions, index order for collections. A node
// with zero children is a direct type or shape mismatch; a node with children
// aggregates the failures beneath it.
type Error struct {
	Msg      string
	Val      any
	Schema   Schema
	Details  []Detail
	Children []Child
}

func newError(msg string, val any, s Schema) *Error {
	return &Error{Msg: msg, Val: val, Schema: s}
}

// Error renders the full human-readable report preceded by a blank line, so
// the indented tree stays aligned when printed after a log prefix.
func (e *Error) Error() string { return "\n" + e.explain("") }

// Detail returns the detail value stored under label, if any.
func (e *Error) Detail(label string) (Lines, bool) {
	for _, d := range e.Details {
		if d.Label == label {
			return d.Value, true
		}
	}
	return nil, false
}

// AsError extracts a validation *Error from err using errors.As.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
