package store

import (
	"context"
	"testing"

	"clienthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, SeedAdmin(ctx, m, "Root", "root@hub.local", "s3cret"))

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	admin := users[0]
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, "s3cret", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))

	// reruns are no-ops once any admin exists
	require.NoError(t, SeedAdmin(ctx, m, "Other", "other@hub.local", "pw"))
	users, err = m.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
