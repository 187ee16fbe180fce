package vendorcontext

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVendorContextDefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		ctx := GetVendorContext(c)
		assert.False(t, ctx.IsAuthenticated)
		assert.False(t, ctx.IsAdmin)
		assert.Zero(t, ctx.VendorID)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestGetVendorContextFromLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(KeyVendorContext, VendorContext{
			VendorID:        42,
			Name:            "Acme Sales",
			IsAuthenticated: true,
			IsAdmin:         true,
		})
		assert.True(t, IsAuthenticated(c))
		assert.True(t, IsAdmin(c))
		assert.Equal(t, uint(42), GetVendorID(c))
		assert.Equal(t, "Acme Sales", GetVendorName(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
