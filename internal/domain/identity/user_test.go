package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("  Adviser@Example.COM ", "Sipho", "Dlamini", "s3cret-pass", RoleAdviser)
	require.NoError(t, err)
	assert.Equal(t, "adviser@example.com", u.Email)
	assert.Equal(t, "Sipho Dlamini", u.FullName())
	assert.True(t, u.IsActive())
	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("bad-email", "Sipho", "Dlamini", "s3cret-pass", RoleAdviser)
	assert.Error(t, err)

	_, err = NewUser("a@b.co", "", "Dlamini", "s3cret-pass", RoleAdviser)
	assert.Error(t, err)

	_, err = NewUser("a@b.co", "Sipho", "Dlamini", "short", RoleAdviser)
	assert.Error(t, err)

	_, err = NewUser("a@b.co", "Sipho", "Dlamini", "s3cret-pass", Role("manager"))
	assert.Error(t, err)
}

func TestChangeRole(t *testing.T) {
	u, err := NewUser("a@b.co", "Sipho", "Dlamini", "s3cret-pass", RoleAssistant)
	require.NoError(t, err)

	require.NoError(t, u.ChangeRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Error(t, u.ChangeRole(Role("owner")))
}

func TestActivationCycle(t *testing.T) {
	u, err := NewUser("a@b.co", "Sipho", "Dlamini", "s3cret-pass", RoleAdviser)
	require.NoError(t, err)

	assert.Error(t, u.Activate())
	require.NoError(t, u.Deactivate())
	assert.False(t, u.IsActive())
	assert.Error(t, u.Deactivate())
	require.NoError(t, u.Activate())
	assert.True(t, u.IsActive())
}
