package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errRemote = errors.New("remote failed")

func TestExecuteWithBreaker_NilBreaker(t *testing.T) {
	res, err := ExecuteWithBreaker[int](nil, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestExecuteWithBreaker_Trips(t *testing.T) {
	cb := NewBreaker(BreakerSettings{
		Name:         "test",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}, zap.NewNop())

	calls := 0
	fail := func() (string, error) {
		calls++
		return "", errRemote
	}

	for i := 0; i < 3; i++ {
		_, err := ExecuteWithBreaker(cb, fail)
		assert.ErrorIs(t, err, errRemote)
	}

	_, err := ExecuteWithBreaker(cb, fail)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithBreaker_IsSuccessful(t *testing.T) {
	cb := NewBreaker(BreakerSettings{
		Name:         "test",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  1,
		FailureRatio: 0.1,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errRemote) },
	}, nil)

	for i := 0; i < 5; i++ {
		_, err := ExecuteWithBreaker(cb, func() (int, error) { return 0, errRemote })
		assert.ErrorIs(t, err, errRemote)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
