package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b", "c"}, "b"))
	assert.False(t, ContainsString([]string{"a", "b", "c"}, "d"))
	assert.False(t, ContainsString(nil, "a"))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.3, Clamp01(0.3))
	assert.Equal(t, 1.0, Clamp01(1.7))
}
