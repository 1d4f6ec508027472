package pipeline

import (
	"errors"
	"fmt"
)

// StageError tags a collaborator failure with the stage that produced it.
// Stage failures are never retried here; the caller decides whether to retry
// the whole request. A collaborator timeout surfaces as a StageError too.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// NewStageError creates a stage-tagged failure
func NewStageError(stage Stage, cause error) *StageError {
	return &StageError{Stage: stage, Cause: cause}
}

// AsStageError extracts a StageError from an error chain
func AsStageError(err error) (*StageError, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr, true
	}
	return nil, false
}
