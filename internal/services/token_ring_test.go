package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRingCreation(t *testing.T) {
	t.Run("Requires at least one token", func(t *testing.T) {
		ring, err := NewTokenRing(nil)

		assert.Nil(t, ring)
		assert.ErrorIs(t, err, ErrNoTokens)
	})

	t.Run("Starts at the first token", func(t *testing.T) {
		ring, err := NewTokenRing([]string{"alpha", "beta", "gamma"})

		assert.NoError(t, err)
		assert.Equal(t, "alpha", ring.Active())
		assert.Equal(t, 3, ring.Len())
	})

	t.Run("Copies the token slice", func(t *testing.T) {
		tokens := []string{"alpha", "beta"}
		ring, err := NewTokenRing(tokens)
		assert.NoError(t, err)

		tokens[0] = "mutated"
		assert.Equal(t, "alpha", ring.Active())
	})
}

func TestTokenRingRotation(t *testing.T) {
	t.Run("Rotation always succeeds and wraps around", func(t *testing.T) {
		ring, err := NewTokenRing([]string{"alpha", "beta", "gamma"})
		assert.NoError(t, err)

		assert.Equal(t, "beta", ring.Rotate())
		assert.Equal(t, "gamma", ring.Rotate())
		assert.Equal(t, "alpha", ring.Rotate())
		assert.Equal(t, "beta", ring.Rotate())
	})

	t.Run("Single token rotates onto itself", func(t *testing.T) {
		ring, err := NewTokenRing([]string{"only"})
		assert.NoError(t, err)

		assert.Equal(t, "only", ring.Rotate())
		assert.Equal(t, "only", ring.Active())
	})

	t.Run("Active reflects the last rotation", func(t *testing.T) {
		ring, err := NewTokenRing([]string{"alpha", "beta"})
		assert.NoError(t, err)

		ring.Rotate()
		assert.Equal(t, "beta", ring.Active())
	})
}
