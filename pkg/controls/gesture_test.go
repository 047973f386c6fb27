package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGestureTokenExclusive(t *testing.T) {
	var token GestureToken
	assert.Equal(t, GestureNone, token.Active())

	assert.True(t, token.Acquire(GestureRotate, func() {}))
	assert.Equal(t, GestureRotate, token.Active())

	// Equal-priority gestures refuse to start
	assert.False(t, token.Acquire(GesturePan, func() {}))
	assert.False(t, token.Acquire(GestureAreaZoom, func() {}))
	assert.Equal(t, GestureRotate, token.Active())

	token.Release(GestureRotate)
	assert.Equal(t, GestureNone, token.Active())
	assert.True(t, token.Acquire(GesturePan, func() {}))
}

func TestGestureTokenPreemption(t *testing.T) {
	var token GestureToken
	cancelled := false
	assert.True(t, token.Acquire(GestureRotate, func() {
		cancelled = true
		token.Release(GestureRotate)
	}))

	// A gizmo drag pre-empts a camera orbit
	assert.True(t, token.Acquire(GestureGizmo, func() {}))
	assert.True(t, cancelled)
	assert.Equal(t, GestureGizmo, token.Active())

	// But nothing pre-empts a gizmo drag
	assert.False(t, token.Acquire(GestureRotate, func() {}))
}

func TestGestureTokenReleaseWrongOwner(t *testing.T) {
	var token GestureToken
	assert.True(t, token.Acquire(GestureRotate, func() {}))

	// Releasing a gesture that does not hold the token is a no-op
	token.Release(GesturePan)
	assert.Equal(t, GestureRotate, token.Active())
}

func TestGestureTokenStuckCancel(t *testing.T) {
	var token GestureToken
	// A cancel callback that fails to release keeps the token denied
	assert.True(t, token.Acquire(GestureRotate, func() {}))
	assert.False(t, token.Acquire(GestureGizmo, func() {}))
	assert.Equal(t, GestureRotate, token.Active())
}
