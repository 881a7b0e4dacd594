package router

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFanDeliversToAllSubscribers(t *testing.T) {
	input := make(chan int)
	f := NewFan[int]("test", input)
	a := f.Subscribe("a")
	b := f.Subscribe("b")

	done := make(chan error, 1)
	go func() { done <- f.Run() }()

	input <- 7
	require.Equal(t, 7, <-a)
	require.Equal(t, 7, <-b)

	input <- 9
	require.Equal(t, 9, <-a)
	require.Equal(t, 9, <-b)

	close(input)
	require.NoError(t, <-done)

	// Subscribers close when the input drains.
	_, open := <-a
	require.False(t, open)
	_, open = <-b
	require.False(t, open)
}

func TestFanDoubleSubscribePanics(t *testing.T) {
	f := NewFan[int]("test", make(chan int))
	f.Subscribe("a")
	require.Panics(t, func() { f.Subscribe("a") })
}

func TestFanUnsubscribe(t *testing.T) {
	input := make(chan int)
	f := NewFan[int]("test", input)
	a := f.Subscribe("a")
	f.Unsubscribe("a")
	_, open := <-a
	require.False(t, open)
	require.Panics(t, func() { f.Unsubscribe("a") })
}
