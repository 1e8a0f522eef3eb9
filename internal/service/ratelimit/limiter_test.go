package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("news", 3, 0.000001), "call %d", i)
	}
	assert.False(t, l.Allow("news", 3, 0.000001))
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("news", 1, 0.000001))
	assert.False(t, l.Allow("news", 1, 0.000001))
	assert.True(t, l.Allow("chart", 1, 0.000001))
}

func TestAllowRefills(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("news", 1, 20))
	assert.False(t, l.Allow("news", 1, 20))

	time.Sleep(100 * time.Millisecond)
	assert.True(t, l.Allow("news", 1, 20))
}
