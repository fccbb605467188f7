package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/adapters/services"
	"pastebridge/internal/domain/entities"
)

func TestHash(t *testing.T) {
	ctx := testContext(t)
	service := services.NewBcrypt(4)

	t.Run("produces a verifiable hash", func(t *testing.T) {
		hash, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "secret123", hash)

		ok, err := service.Verify(ctx, "secret123", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects passwords shorter than the minimum", func(t *testing.T) {
		_, err := service.Hash(ctx, "12345")
		assert.ErrorIs(t, err, entities.ErrPasswordTooShort)
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		first, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)
		second, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestVerify(t *testing.T) {
	ctx := testContext(t)
	service := services.NewBcrypt(4)

	t.Run("wrong password is no match, not an error", func(t *testing.T) {
		hash, err := service.Hash(ctx, "secret123")
		require.NoError(t, err)

		ok, err := service.Verify(ctx, "wrong-password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty inputs never match", func(t *testing.T) {
		ok, err := service.Verify(ctx, "", "some-hash")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = service.Verify(ctx, "secret123", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
