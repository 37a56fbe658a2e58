package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Issue(userID)
	require.NoError(t, err)

	got, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := auth.NewTokenManager("one-secret", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = auth.NewTokenManager("another-secret", time.Hour).Verify(token)
	require.Error(t, err)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	t.Parallel()

	manager := auth.NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue(uuid.New())
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	t.Parallel()

	_, err := auth.NewTokenManager("test-secret", time.Hour).Verify("not.a.token")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter2"))
	assert.False(t, auth.CheckPassword(hash, "hunter3"))
}
