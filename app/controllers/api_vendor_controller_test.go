package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGetVendorAccountUnauthenticated(t *testing.T) {
	app := newVendorApp(fiber.MethodGet, "/vendor/profile", nil, HandleGetVendorAccount)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/vendor/profile", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleListVendorPurchasesUnauthenticated(t *testing.T) {
	app := newVendorApp(fiber.MethodGet, "/vendor/purchases", nil, HandleListVendorPurchases)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/vendor/purchases", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleGenerateAPIKeyUnauthenticated(t *testing.T) {
	app := newVendorApp(fiber.MethodPost, "/vendor/api-key", nil, HandleGenerateAPIKey)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/vendor/api-key", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
