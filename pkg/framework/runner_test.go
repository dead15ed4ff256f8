package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunnerWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx)
	errBoom := errors.New("boom")
	r.Go(
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		NamedRun("failing", RunFunc(func(context.Context) error {
			cancel()
			return errBoom
		})),
	)
	err := r.Wait()
	require.Error(t, err)
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Equal(t, []error{errBoom}, agg.Errors)
}

func TestRunnerPanicAsError(t *testing.T) {
	r := NewRunner()
	r.Go(NamedRun("bad", RunFunc(func(context.Context) error {
		panic("oops")
	})))
	err := r.Wait()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Runner[bad] panic: oops")
}

func TestRunnerPanicToFaultHandler(t *testing.T) {
	faultCh := make(chan interface{}, 1)
	r := NewRunner().WithFaultHandler(FaultHandlerFunc(func(fault interface{}) {
		faultCh <- fault
	}))
	r.Go(RunFunc(func(context.Context) error {
		panic("oops")
	}))
	require.NoError(t, r.Wait())
	require.Equal(t, "oops", <-faultCh)
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var closes int
	unblock := make(chan struct{})
	closer := closerFunc(func() error {
		closes++
		close(unblock)
		return nil
	})
	cancel()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closes)

	closes = 0
	err = RunWithContextCloser(context.Background(), closerFunc(func() error {
		closes++
		return nil
	}), func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, 1, closes)
}
