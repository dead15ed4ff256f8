package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type namedThing string

func (n namedThing) Name() string { return string(n) }

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	errs.Add(errors.New("e1"))
	require.Equal(t, "e1", errs.Aggregate().Error())

	errs.Add(errors.New("e2"), nil)
	err := errs.Aggregate()
	require.Error(t, err)
	require.Len(t, errs.Errors, 2)
	require.Equal(t, "2 errors:\n  e1\n  e2", err.Error())
}

func TestAggregatedErrorIs(t *testing.T) {
	errX := errors.New("x")
	var errs AggregatedError
	err := errs.Add(errors.New("y"), errX).Aggregate()
	require.True(t, errors.Is(err, errX))
}

func TestAggregatedErrorAddFrom(t *testing.T) {
	errX := errors.New("x")
	var errs AggregatedError
	errs.AddFrom(namedThing("mqtt"), errX).
		AddFrom(namedThing("tcp"), nil).
		AddFrom(42, errors.New("y"))
	require.Len(t, errs.Errors, 2)
	require.Equal(t, "mqtt: x", errs.Errors[0].Error())
	require.Equal(t, "y", errs.Errors[1].Error())
	require.True(t, errors.Is(errs.Aggregate(), errX))
}
