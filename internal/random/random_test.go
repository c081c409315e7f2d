package random_test

import (
	"testing"

	"github.com/myrjola/trackside/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetters(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		letters, err := random.Letters(16)
		require.NoError(t, err)
		assert.Len(t, letters, 16)
		_, duplicate := seen[letters]
		assert.False(t, duplicate, "generated duplicate string %s", letters)
		seen[letters] = struct{}{}
	}
}

func TestLetters_zeroLength(t *testing.T) {
	letters, err := random.Letters(0)
	require.NoError(t, err)
	assert.Empty(t, letters)
}
