package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPasswordCost("s3cret-pass", 4)
	require.NoError(t, err)

	assert.True(t, VerifyHash(hash))
	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong-pass"), ErrMismatch)
}

func TestVerifyHash(t *testing.T) {
	assert.False(t, VerifyHash("plain"))
	assert.False(t, VerifyHash(""))
}
