package model

import "errors"

// Error kinds recognized by the pipeline. All of them are recovered at the
// smallest possible scope: provider and timeout errors degrade to partial
// evidence, and only a malformed plan (internal invariant violation)
// reaches the claim boundary, where it becomes an error verdict instead of
// propagating further.
var (
	ErrProvider      = errors.New("search provider failed")
	ErrGatherTimeout = errors.New("evidence gathering timed out")
	ErrPlanInvalid   = errors.New("search plan invalid")
)
