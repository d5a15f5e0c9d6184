package stepper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"swarachna-api/internal/stepper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	changes   []int
	completes int
	failures  []int
}

func (r *recorder) opts() []stepper.Option {
	return []stepper.Option{
		stepper.WithStepChange(func(i int) { r.changes = append(r.changes, i) }),
		stepper.WithComplete(func() { r.completes++ }),
		stepper.WithValidationFailed(func(i int) { r.failures = append(r.failures, i) }),
	}
}

func TestNew(t *testing.T) {
	_, err := stepper.New(0)
	assert.ErrorIs(t, err, stepper.ErrNoSteps)

	_, err = stepper.New(3, stepper.WithStartIndex(3))
	assert.ErrorIs(t, err, stepper.ErrStartOutOfRange)

	e, err := stepper.New(3, stepper.WithStartIndex(2))
	require.NoError(t, err)
	assert.Equal(t, 2, e.Current())
	assert.True(t, e.IsLast())
}

func TestGoNext_WithoutValidator(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	e, err := stepper.New(3, rec.opts()...)
	require.NoError(t, err)

	indices := []int{e.Current()}
	outcomes := []stepper.Outcome{}
	for i := 0; i < 3; i++ {
		out, err := e.GoNext(ctx)
		require.NoError(t, err)
		outcomes = append(outcomes, out)
		indices = append(indices, e.Current())
	}

	assert.Equal(t, []int{0, 1, 2, 2}, indices)
	assert.Equal(t, []stepper.Outcome{stepper.OutcomeAdvanced, stepper.OutcomeAdvanced, stepper.OutcomeCompleted}, outcomes)
	assert.Equal(t, []int{1, 2}, rec.changes)
	assert.Equal(t, 1, rec.completes)
}

func TestGoNext_ValidatorRejects(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	calls := 0
	opts := append(rec.opts(), stepper.WithValidator(func(_ context.Context, step int) (bool, error) {
		calls++
		return step != 0, nil
	}))

	e, err := stepper.New(3, opts...)
	require.NoError(t, err)

	out, err := e.GoNext(ctx)
	assert.ErrorIs(t, err, stepper.ErrValidationFailed)
	assert.Equal(t, stepper.OutcomeNone, out)
	assert.Equal(t, 0, e.Current())
	assert.Empty(t, rec.changes)
	assert.Equal(t, []int{0}, rec.failures)
	assert.Equal(t, 1, calls)
}

func TestGoNext_ValidatorError(t *testing.T) {
	boom := errors.New("upstream down")
	rec := &recorder{}
	opts := append(rec.opts(), stepper.WithValidator(func(context.Context, int) (bool, error) {
		return false, boom
	}))

	e, err := stepper.New(2, opts...)
	require.NoError(t, err)

	_, err = e.GoNext(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, stepper.ErrValidationFailed)
	assert.Equal(t, 0, e.Current())
	assert.Empty(t, rec.failures)
	assert.Empty(t, rec.changes)
}

func TestGoNext_CancelledDuringValidation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	opts := append(rec.opts(), stepper.WithValidator(func(context.Context, int) (bool, error) {
		cancel()
		return true, nil
	}))

	e, err := stepper.New(3, opts...)
	require.NoError(t, err)

	_, err = e.GoNext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, e.Current())
	assert.Empty(t, rec.changes)
}

func TestGoNext_IndexReadBeforeValidation(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})

	e, err := stepper.New(4, stepper.WithValidator(func(_ context.Context, step int) (bool, error) {
		if step == 0 {
			close(entered)
			<-release
		}
		return true, nil
	}))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := e.GoNext(ctx)
		done <- err
	}()

	<-entered
	// the pending transition has not written anything yet
	assert.Equal(t, 0, e.Current())
	close(release)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("GoNext did not return")
	}
	assert.Equal(t, 1, e.Current())
}

func TestGoBack(t *testing.T) {
	rec := &recorder{}
	opts := append(rec.opts(),
		stepper.WithStartIndex(1),
		stepper.WithValidator(func(context.Context, int) (bool, error) {
			t.Fatal("validator must not run on backward motion")
			return false, nil
		}),
	)
	e, err := stepper.New(3, opts...)
	require.NoError(t, err)

	assert.True(t, e.GoBack())
	assert.Equal(t, 0, e.Current())
	assert.False(t, e.GoBack())
	assert.Equal(t, 0, e.Current())
	assert.Equal(t, []int{0}, rec.changes)
}

func TestGoToStep(t *testing.T) {
	ctx := context.Background()

	t.Run("backward jump skips validator", func(t *testing.T) {
		rec := &recorder{}
		e, err := stepper.New(3, append(rec.opts(), stepper.WithStartIndex(2))...)
		require.NoError(t, err)

		require.NoError(t, e.GoToStep(ctx, 0))
		assert.Equal(t, 0, e.Current())
		assert.Equal(t, []int{0}, rec.changes)
	})

	t.Run("forward jump validates current step only", func(t *testing.T) {
		rec := &recorder{}
		validated := []int{}
		opts := append(rec.opts(), stepper.WithValidator(func(_ context.Context, step int) (bool, error) {
			validated = append(validated, step)
			return true, nil
		}))
		e, err := stepper.New(5, opts...)
		require.NoError(t, err)

		require.NoError(t, e.GoToStep(ctx, 3))
		assert.Equal(t, 3, e.Current())
		assert.Equal(t, []int{0}, validated)
		assert.Equal(t, []int{3}, rec.changes)
	})

	t.Run("rejected forward jump", func(t *testing.T) {
		rec := &recorder{}
		opts := append(rec.opts(), stepper.WithValidator(func(context.Context, int) (bool, error) {
			return false, nil
		}))
		e, err := stepper.New(4, opts...)
		require.NoError(t, err)

		err = e.GoToStep(ctx, 3)
		assert.ErrorIs(t, err, stepper.ErrValidationFailed)
		assert.Equal(t, 0, e.Current())
		assert.Equal(t, []int{0}, rec.failures)
	})

	t.Run("same step is a no-op", func(t *testing.T) {
		rec := &recorder{}
		e, err := stepper.New(2, rec.opts()...)
		require.NoError(t, err)

		require.NoError(t, e.GoToStep(ctx, 0))
		assert.Empty(t, rec.changes)
	})

	t.Run("out of range", func(t *testing.T) {
		e, err := stepper.New(2)
		require.NoError(t, err)

		assert.ErrorIs(t, e.GoToStep(ctx, 2), stepper.ErrStepOutOfRange)
		assert.ErrorIs(t, e.GoToStep(ctx, -1), stepper.ErrStepOutOfRange)
	})
}
