package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 1)

	token, err := manager.Issue(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseTrimsBearerPrefix(t *testing.T) {
	manager := NewTokenManager("test-secret", 1)

	token, err := manager.Issue(7)
	assert.NoError(t, err)

	userID, err := manager.Parse("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", 1)
	verifier := NewTokenManager("secret-two", 1)

	token, err := issuer.Issue(1)
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -1)

	token, err := manager.Issue(1)
	assert.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 1)

	_, err := manager.Parse("not-a-token")
	assert.Error(t, err)
}
