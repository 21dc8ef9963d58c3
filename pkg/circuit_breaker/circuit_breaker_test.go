package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	successfulService := func() error { return nil }
	errService := errors.New("service error")
	failingService := func() error { return errService }

	clock := time.Unix(0, 0)
	cb := New(10, 2*time.Second, 0.3, 3).(*circuitBreaker)
	cb.now = func() time.Time { return clock }

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.Equal(t, Closed, cb.State())

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(failingService), errService)
	}
	require.Equal(t, Open, cb.State())

	// open breaker short-circuits without calling the service
	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrOpenCB)
	require.False(t, called)

	clock = clock.Add(3 * time.Second)
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, HalfOpen, cb.State())

	// a failure while half-open trips it again
	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, Open, cb.State())

	clock = clock.Add(3 * time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	cb := New(2, time.Minute, 0.5, 1)
	_ = cb.Call(func() error { return errors.New("boom") })
	require.Equal(t, Open, cb.State())

	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
