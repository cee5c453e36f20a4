package replaycache

import (
	"errors"
	"fmt"
)

var (
	ErrNilStore = errors.New("replaycache: store is required")
	// ErrNilTransform is returned by GetAs when no transform is given and the
	// raw []byte value cannot be returned as T.
	ErrNilTransform = errors.New("replaycache: nil transform")
)

// Record stages reported by RecordError and Hooks.RecordError.
const (
	StageCount   = "count"
	StageInputs  = "inputs"
	StageOutputs = "outputs"
)

// RecordError reports a failed counter or history write for a tracked method.
type RecordError struct {
	Method string
	Stage  string
	Err    error
}

func (e *RecordError) Error() string {
	switch e.Stage {
	case StageCount:
		return fmt.Sprintf("replaycache: count call of %q: %v", e.Method, e.Err)
	case StageInputs, StageOutputs:
		return fmt.Sprintf("replaycache: record %s of %q: %v", e.Stage, e.Method, e.Err)
	default:
		return fmt.Sprintf("replaycache: instrument %q: %v", e.Method, e.Err)
	}
}

func (e *RecordError) Unwrap() error { return e.Err }
