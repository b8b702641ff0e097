package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := IssueSessionToken("secret", "user-1", "u@example.com")
	require.NoError(t, err)

	claims, err := ParseSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := IssueSessionToken("secret", "user-1", "u@example.com")
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", token)
	assert.Error(t, err)
}

func TestIssueSessionTokenRequiresSecret(t *testing.T) {
	_, err := IssueSessionToken("", "user-1", "u@example.com")
	assert.Error(t, err)
}
