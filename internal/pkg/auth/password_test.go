package auth_test

import (
	"testing"

	"github.com/schoolie/schoolie-backend/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("Should hash and verify a password", func(t *testing.T) {
		hash, err := auth.HashPassword("P@ss1234")
		require.NoError(t, err)
		assert.NotEqual(t, "P@ss1234", hash)
		assert.True(t, auth.CheckPassword(hash, "P@ss1234"))
	})

	t.Run("Should reject a wrong password", func(t *testing.T) {
		hash, err := auth.HashPassword("P@ss1234")
		require.NoError(t, err)
		assert.False(t, auth.CheckPassword(hash, "wrong-password"))
	})

	t.Run("Should produce a different hash each time", func(t *testing.T) {
		first, err := auth.HashPassword("P@ss1234")
		require.NoError(t, err)
		second, err := auth.HashPassword("P@ss1234")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
