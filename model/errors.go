package model

import "errors"

// ErrInvalidProblem is returned for any structural defect of a Problem:
// non-positive dimensions, mismatched vector lengths, unknown relations
// or objective kinds and non-finite coefficients.
var ErrInvalidProblem = errors.New("model: invalid problem")
