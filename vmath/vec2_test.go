package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVec2Arithmetic verifies the component-wise helpers
func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(3, -4), V2(1, 2)
	assert.Equal(t, V2(4, -2), V2Add(a, b))
	assert.Equal(t, V2(2, -6), V2Sub(a, b))
	assert.Equal(t, V2(6, -8), V2Scale(a, 2))
	assert.Equal(t, V2(3, 4), V2Abs(a))
}

// TestV2MaxAxis verifies the dominant axis length ignores the minor axis
func TestV2MaxAxis(t *testing.T) {
	assert.Equal(t, 4.0, V2MaxAxis(V2(3, -4)))
	assert.Equal(t, 90.0, V2MaxAxis(V2(90, 89)))
	assert.Equal(t, 0.0, V2MaxAxis(Zero2))
}

// TestClamp verifies both bounds
func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.True(t, V2IsZero(Zero2))
	assert.False(t, V2IsZero(V2(0, 1e-9)))
}
