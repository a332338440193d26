package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad-backend/internal/utils"
)

func TestGenerateAnonymousName(t *testing.T) {
	name := utils.GenerateAnonymousName()
	assert.NotEmpty(t, name)
	assert.Regexp(t, `^[A-Z][a-z]+[A-Z][a-z]+\d{1,3}$`, name)
}

func TestGenerateReferralCode(t *testing.T) {
	code := utils.GenerateReferralCode(8)
	assert.Len(t, code, 8)
	assert.Regexp(t, `^[A-Z0-9]{8}$`, code)
}

func TestGenerateOTPCode(t *testing.T) {
	code := utils.GenerateOTPCode(4)
	assert.Len(t, code, 4)
	assert.Regexp(t, `^\d{4}$`, code)
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	// Hex encoding doubles the byte length.
	assert.Len(t, s, 64)

	other, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

func TestGenerateSecureRandomString_RejectsNonPositiveLength(t *testing.T) {
	_, err := utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}
