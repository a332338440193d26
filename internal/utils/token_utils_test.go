package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad-backend/internal/utils"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "inkpad-test"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := utils.GenerateToken("alice", "user", utils.TokenTypeAccess, testSecret, testIssuer, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateToken(token, testSecret, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, utils.TokenTypeAccess, claims.TokenType)
}

func TestGenerateToken_SameSecondMintsDiffer(t *testing.T) {
	// Timestamps have second granularity, so back-to-back mints for the same
	// subject would collide without a unique token ID.
	first, err := utils.GenerateToken("alice", "user", utils.TokenTypeRefresh, testSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	second, err := utils.GenerateToken("alice", "user", utils.TokenTypeRefresh, testSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	claims, err := utils.ParseAndValidateToken(second, testSecret, utils.TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAndValidateToken_WrongTypeRejected(t *testing.T) {
	token, err := utils.GenerateToken("alice", "user", utils.TokenTypeRefresh, testSecret, testIssuer, time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateToken(token, testSecret, utils.TokenTypeAccess)
	assert.Error(t, err)
}

func TestParseAndValidateToken_WrongSecretRejected(t *testing.T) {
	token, err := utils.GenerateToken("alice", "user", utils.TokenTypeAccess, testSecret, testIssuer, time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateToken(token, "other-secret", utils.TokenTypeAccess)
	assert.Error(t, err)
}

func TestParseAndValidateToken_ExpiredRejected(t *testing.T) {
	token, err := utils.GenerateToken("alice", "user", utils.TokenTypeAccess, testSecret, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateToken(token, testSecret, utils.TokenTypeAccess)
	assert.Error(t, err)
}

func TestParseAndValidateToken_GarbageRejected(t *testing.T) {
	_, err := utils.ParseAndValidateToken("not-a-jwt", testSecret, utils.TokenTypeAccess)
	assert.Error(t, err)
}
