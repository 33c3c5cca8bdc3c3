package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateNumericCode(6)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// 100 draws from a million values collide all the time in a broken
	// generator, almost never in a working one
	require.Greater(t, len(seen), 90)
}

func TestGenerateShortID(t *testing.T) {
	id := GenerateShortID(10)
	require.Len(t, id, 10)
	require.NotEqual(t, id, GenerateShortID(10))
}
