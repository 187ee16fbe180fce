package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVendorDefaults(t *testing.T) {
	v, err := CreateVendor("Acme Sales", "sales@acme.example", "secret123", "Acme GmbH")
	require.NoError(t, err)
	assert.Equal(t, ROLE_VENDOR, v.Role)
	assert.Equal(t, STATUS_ACTIVE, v.Status)
	assert.Equal(t, KYC_PENDING, v.KYCStatus)
	assert.True(t, v.CheckPassword("secret123"))
	assert.False(t, v.CheckPassword("wrong"))
}

func TestCreateVendorValidation(t *testing.T) {
	_, err := CreateVendor("Ab", "not-an-email", "secret123", "")
	require.Error(t, err)
}

func TestGenerateAPIKey(t *testing.T) {
	v := &Vendor{}
	rawKey, err := v.GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rawKey, "ldk_"))
	assert.Equal(t, rawKey[:16], v.APIKeyPrefix)
	assert.Equal(t, HashAPIKey(rawKey), v.APIKeyHash)
	assert.NotNil(t, v.APIKeyCreatedAt)
	assert.Nil(t, v.APIKeyRevokedAt)

	// rotation replaces the hash
	secondKey, err := v.GenerateAPIKey()
	require.NoError(t, err)
	assert.NotEqual(t, rawKey, secondKey)
	assert.Equal(t, HashAPIKey(secondKey), v.APIKeyHash)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("ldk_abc"), HashAPIKey("  ldk_abc \n"))
}
