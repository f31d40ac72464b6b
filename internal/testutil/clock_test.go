package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock_FrozenUntilAdvanced(t *testing.T) {
	c := NewFakeClock()

	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch, c.Now(), "time must not move on its own")

	c.Advance(5 * time.Second)
	assert.Equal(t, Epoch.Add(5*time.Second), c.Now())
}

func TestAutoClock_StepsPerCall(t *testing.T) {
	c := NewAutoClock(time.Second)

	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch.Add(time.Second), c.Now())
	assert.Equal(t, Epoch.Add(2*time.Second), c.Now())
}
