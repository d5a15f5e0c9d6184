// Package stepper drives a fixed, ordered sequence of steps. Forward motion can
// be gated by a validator; backward motion never is.
package stepper

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Validator reports whether step may be left going forward. A non-nil error
// is an internal failure, distinct from a plain false.
type Validator func(ctx context.Context, step int) (bool, error)

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAdvanced
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeCompleted:
		return "completed"
	default:
		return "none"
	}
}

type Option func(*Engine)

func WithValidator(v Validator) Option {
	return func(e *Engine) { e.validate = v }
}

// WithStepChange registers a callback receiving every new index.
func WithStepChange(fn func(step int)) Option {
	return func(e *Engine) { e.onStepChange = fn }
}

// WithComplete registers a callback fired when advancing past the last step.
func WithComplete(fn func()) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// WithValidationFailed registers a callback fired once per rejected transition.
func WithValidationFailed(fn func(step int)) Option {
	return func(e *Engine) { e.onValidationFailed = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStartIndex resumes at a previously reached step.
func WithStartIndex(i int) Option {
	return func(e *Engine) { e.current = i }
}

type Engine struct {
	// mu guards current only; it is never held while the validator runs
	mu      sync.Mutex
	current int
	count   int

	validate           Validator
	onStepChange       func(int)
	onComplete         func()
	onValidationFailed func(int)
	logger             *zap.Logger
}

func New(stepCount int, opts ...Option) (*Engine, error) {
	if stepCount < 1 {
		return nil, ErrNoSteps
	}

	e := &Engine{count: stepCount, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.current < 0 || e.current >= stepCount {
		return nil, fmt.Errorf("%w: %d of %d", ErrStartOutOfRange, e.current, stepCount)
	}
	return e, nil
}

func (e *Engine) Current() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *Engine) StepCount() int {
	return e.count
}

func (e *Engine) IsFirst() bool {
	return e.Current() == 0
}

func (e *Engine) IsLast() bool {
	return e.Current() == e.count-1
}

// GoNext validates the current step and moves one step forward. On the last
// step it fires the completion callback and leaves the index where it is.
func (e *Engine) GoNext(ctx context.Context) (Outcome, error) {
	from := e.Current()

	if err := e.gate(ctx, from); err != nil {
		return OutcomeNone, err
	}

	if from+1 < e.count {
		e.set(from + 1)
		return OutcomeAdvanced, nil
	}

	if e.onComplete != nil {
		e.onComplete()
	}
	return OutcomeCompleted, nil
}

// GoBack moves one step back. It returns false on the first step.
func (e *Engine) GoBack() bool {
	e.mu.Lock()
	if e.current == 0 {
		e.mu.Unlock()
		return false
	}
	e.current--
	to := e.current
	e.mu.Unlock()

	if e.onStepChange != nil {
		e.onStepChange(to)
	}
	return true
}

// GoToStep jumps straight to target. Forward jumps validate the current step
// only; intermediate steps are neither validated nor reported.
func (e *Engine) GoToStep(ctx context.Context, target int) error {
	if target < 0 || target >= e.count {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, target, e.count)
	}

	from := e.Current()
	if target == from {
		return nil
	}

	if target > from {
		if err := e.gate(ctx, from); err != nil {
			return err
		}
	}

	e.set(target)
	return nil
}

// gate runs the validator for step. The index is not touched here.
func (e *Engine) gate(ctx context.Context, step int) error {
	if e.validate == nil {
		return ctx.Err()
	}

	ok, err := e.validate(ctx, step)
	if err != nil {
		e.logger.Error("step validator failed", zap.Int("step", step), zap.Error(err))
		return fmt.Errorf("validate step %d: %w", step, err)
	}
	// the owner may have gone away while validating
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	if !ok {
		if e.onValidationFailed != nil {
			e.onValidationFailed(step)
		}
		return ErrValidationFailed
	}
	return nil
}

func (e *Engine) set(to int) {
	e.mu.Lock()
	e.current = to
	e.mu.Unlock()

	if e.onStepChange != nil {
		e.onStepChange(to)
	}
}
