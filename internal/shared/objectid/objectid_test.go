package objectid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Valid(New()))
	assert.True(t, Valid("64b7f0c2a1b2c3d4e5f60718"))
	assert.False(t, Valid("not-an-id"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("64b7f0c2a1b2c3d4e5f6071"))
}
