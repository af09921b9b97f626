package exercise

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedAction = errors.New("unrecognized action")
	ErrUnknownActionKind  = errors.New("unknown action kind")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrNotInitialized     = errors.New("exercise not initialized")
	ErrInvalidQSet        = errors.New("invalid question set")
	ErrStoreClosed        = errors.New("store closed")
)

// UnrecognizedActionError is returned by a reducer level that has no
// transition for the dispatched action.
type UnrecognizedActionError struct {
	Reducer string
	Kind    ActionKind
}

func (e *UnrecognizedActionError) Error() string {
	return fmt.Sprintf("%s reducer: action type %q not found", e.Reducer, e.Kind)
}

func (e *UnrecognizedActionError) Unwrap() error {
	return ErrUnrecognizedAction
}

func unrecognized(reducer string, a Action) error {
	return &UnrecognizedActionError{Reducer: reducer, Kind: a.Kind()}
}

// IndexError reports a slot index that would break token conservation.
type IndexError struct {
	Field string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d out of range for list of length %d", e.Field, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
