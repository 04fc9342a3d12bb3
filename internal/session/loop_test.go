package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_PostPreservesOrder(t *testing.T) {
	loop := NewLoop(16)
	loop.Run()
	defer loop.Stop()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, loop.Post(func() {
			got = append(got, i)
			if i == 4 {
				close(done)
			}
		}))
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for posted tasks")
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_CallReturnsError(t *testing.T) {
	loop := NewLoop(16)
	loop.Run()
	defer loop.Stop()

	wantErr := errors.New("transition rejected")
	assert.ErrorIs(t, loop.Call(func() error { return wantErr }), wantErr)
	assert.NoError(t, loop.Call(func() error { return nil }))
}

func TestLoop_CallOnSerializedState(t *testing.T) {
	loop := NewLoop(16)
	loop.Run()
	defer loop.Stop()

	// Счетчик без блокировок: все инкременты идут через цикл
	counter := 0
	done := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_ = loop.Call(func() error {
				counter++
				done <- struct{}{}
				return nil
			})
		}()
	}
	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for calls")
		}
	}
	assert.Equal(t, 10, counter)
}

func TestLoop_PostAfterStop(t *testing.T) {
	loop := NewLoop(16)
	loop.Run()
	loop.Stop()

	assert.False(t, loop.Post(func() {}))
	assert.ErrorIs(t, loop.Call(func() error { return nil }), ErrSessionClosed)
}

func TestLoop_StopIsIdempotent(t *testing.T) {
	loop := NewLoop(16)
	loop.Run()

	loop.Stop()
	loop.Stop()
}
