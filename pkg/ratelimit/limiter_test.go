package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelayFirstCallDoesNotBlock(t *testing.T) {
	l := NewFixedDelay(100 * time.Millisecond)

	start := time.Now()
	l.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFixedDelayPacesConsecutiveCalls(t *testing.T) {
	l := NewFixedDelay(50 * time.Millisecond)

	l.Wait()
	start := time.Now()
	l.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFixedDelayZeroNeverBlocks(t *testing.T) {
	l := NewFixedDelay(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		l.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFixedDelayReset(t *testing.T) {
	l := NewFixedDelay(100 * time.Millisecond)

	l.Wait()
	l.Reset()

	start := time.Now()
	l.Wait()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(3, time.Minute)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 50*time.Millisecond)

	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestTokenBucketReset(t *testing.T) {
	tb := NewTokenBucket(1, time.Minute)

	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	tb.Reset()
	assert.True(t, tb.Allow())
}

func TestNoneNeverBlocks(t *testing.T) {
	var l Limiter = None{}

	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Wait()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
