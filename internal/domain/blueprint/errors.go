package blueprint

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a blank blueprint string is submitted.
var ErrEmptyInput = errors.New("blueprint string is empty")

// Stage identifies the decode step that failed
type Stage string

const (
	StageBase64  Stage = "base64"
	StageInflate Stage = "inflate"
	StageJSON    Stage = "json"
)

// DecodeError reports a blueprint string that could not be turned into JSON.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode blueprint (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a document that could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode blueprint: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is (or wraps) a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsEncodeError reports whether err is (or wraps) an EncodeError.
func IsEncodeError(err error) bool {
	var ee *EncodeError
	return errors.As(err, &ee)
}
