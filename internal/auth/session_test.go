package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	token, exp, err := IssueSession("admin@example.com", "minikadimlar", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseSession(token, "secret", "minikadimlar")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestSessionWrongKey(t *testing.T) {
	token, _, err := IssueSession("admin@example.com", "minikadimlar", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSession(token, "other-secret", "minikadimlar")
	assert.Error(t, err)
}

func TestSessionExpired(t *testing.T) {
	token, _, err := IssueSession("admin@example.com", "minikadimlar", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSession(token, "secret", "minikadimlar")
	assert.Error(t, err)
}

func TestSessionIssuerMismatch(t *testing.T) {
	token, _, err := IssueSession("admin@example.com", "someone-else", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSession(token, "secret", "minikadimlar")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("cok-gizli")
	require.NoError(t, err)
	assert.NotEqual(t, "cok-gizli", hash)

	assert.True(t, CheckPassword("cok-gizli", hash))
	assert.False(t, CheckPassword("yanlis", hash))
	assert.False(t, CheckPassword("cok-gizli", "not-a-hash"))
}
