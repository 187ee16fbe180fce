package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2024, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", 0, defaultPageSize},
		{"second page", "?page=2&limit=10", 10, 10},
		{"negative page", "?page=-3", 0, defaultPageSize},
		{"zero limit", "?limit=0", 0, defaultPageSize},
		{"capped limit", "?limit=5000", 0, maxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				offset, limit := parsePagination(c)
				assert.Equal(t, tt.wantOffset, offset)
				assert.Equal(t, tt.wantLimit, limit)
				return c.SendStatus(fiber.StatusNoContent)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}
