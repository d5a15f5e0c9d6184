package stepper

import "errors"

var (
	ErrNoSteps          = errors.New("stepper: step count must be at least 1")
	ErrStartOutOfRange  = errors.New("stepper: start index out of range")
	ErrStepOutOfRange   = errors.New("stepper: target step out of range")
	ErrValidationFailed = errors.New("stepper: step validation failed")
)
