package adminauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmhgames/reward-service/internal/domain"
)

func TestParseSeed(t *testing.T) {
	t.Run("parses multiple identities", func(t *testing.T) {
		seed := "tok-a:alice:operator:economic.mint|economic.stop, tok-b:bob:viewer:"

		users, err := ParseSeed(seed)

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Name)
		assert.Equal(t, domain.AdminLevelOperator, users[0].Level)
		assert.Equal(t, []string{"economic.mint", "economic.stop"}, users[0].Permissions)
		assert.Equal(t, domain.AdminLevelViewer, users[1].Level)
	})

	t.Run("malformed entry redacts the token", func(t *testing.T) {
		_, err := ParseSeed("secret-token:alice:operator")

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "secret-token")
		assert.Contains(t, err.Error(), "[token]")
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := ParseSeed("tok:alice:root:*")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "root")
	})

	t.Run("empty seed", func(t *testing.T) {
		_, err := ParseSeed("  , ")
		assert.Error(t, err)
	})
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry([]domain.AdminUser{
		{Token: "tok-a", Name: "alice", Level: domain.AdminLevelOperator},
		{Token: "tok-b", Name: "bob", Level: domain.AdminLevelViewer},
	})

	t.Run("known token resolves its identity", func(t *testing.T) {
		user, err := registry.Lookup("tok-b")

		require.NoError(t, err)
		assert.Equal(t, "bob", user.Name)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := registry.Lookup("tok-c")
		assert.ErrorIs(t, err, domain.ErrUnknownAdminToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := registry.Lookup("")
		assert.ErrorIs(t, err, domain.ErrUnknownAdminToken)
	})

	t.Run("prefix of a valid token does not match", func(t *testing.T) {
		_, err := registry.Lookup("tok-")
		assert.ErrorIs(t, err, domain.ErrUnknownAdminToken)
	})
}

func TestUserContextRoundTrip(t *testing.T) {
	user := domain.AdminUser{Name: "alice", Level: domain.AdminLevelOperator}

	ctx := WithUser(context.Background(), user)
	got, ok := UserFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, "alice", got.Name)

	_, ok = UserFromContext(context.Background())
	assert.False(t, ok)
}
