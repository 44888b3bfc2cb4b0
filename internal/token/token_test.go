package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/token"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "00000000-0000-0000-0000-000000000001",
		Role:   domain.UserRoleDeveloper,
		Status: domain.UserStatusApproved,
	}
}

func TestIssueAndParsePair(t *testing.T) {
	m := token.NewManager("secret", 30*time.Minute, 7*24*time.Hour)
	user := testUser()

	access, refresh, err := m.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := m.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "developer", claims.Role)

	claims, err = m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := token.NewManager("secret", 30*time.Minute, 7*24*time.Hour)

	access, refresh, err := m.IssuePair(testUser())
	require.NoError(t, err)

	_, err = m.ParseRefresh(access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := token.NewManager("secret-a", 30*time.Minute, time.Hour)
	verifier := token.NewManager("secret-b", 30*time.Minute, time.Hour)

	access, _, err := issuer.IssuePair(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseAccess(access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	m := token.NewManager("secret", 30*time.Minute, time.Hour)

	_, err := m.ParseAccess("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = m.ParseAccess("")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := token.NewManager("secret", -time.Minute, -time.Minute)

	access, _, err := m.IssuePair(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccess(access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
