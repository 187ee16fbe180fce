package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/leadkart/leadkart/app/models"
	"github.com/leadkart/leadkart/app/repository"
	"github.com/leadkart/leadkart/internal/pkg/database"
	"github.com/leadkart/leadkart/internal/pkg/vendorcontext"
)

// APIKeyAuthMiddleware authenticates requests carrying a vendor API key header.
func APIKeyAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}

		db := database.GetDB()
		if db == nil {
			log.Print("api key middleware: database unavailable")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
		}

		hash := models.HashAPIKey(apiKey)
		repo := repository.GetGlobalFactory().GetVendorRepository()
		vendor, err := repo.GetByAPIKeyHash(hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
			}
			log.Printf("api key lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "API key verification failed"})
		}

		if vendor.Status != models.STATUS_ACTIVE {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Vendor inactive"})
		}

		// Refresh last-used timestamp best-effort.
		now := time.Now()
		if err := db.Model(&models.Vendor{}).
			Where("id = ?", vendor.ID).
			Updates(map[string]any{"api_key_last_used_at": now}).Error; err != nil {
			log.Printf("failed to update api key usage timestamp for vendor %d: %v", vendor.ID, err)
		}

		vendorCtx := vendorcontext.VendorContext{
			VendorID:        vendor.ID,
			Name:            vendor.Name,
			CompanyName:     vendor.CompanyName,
			IsAuthenticated: true,
			IsAdmin:         vendor.Role == models.ROLE_ADMIN,
			KYCStatus:       vendor.KYCStatus,
		}
		c.Locals(vendorcontext.KeyVendorContext, vendorCtx)
		c.Locals(vendorcontext.KeyFromProtected, true)
		c.Locals(vendorcontext.KeyVendorID, vendor.ID)
		c.Locals(vendorcontext.KeyVendorName, vendor.Name)
		c.Locals(vendorcontext.KeyIsAdmin, vendor.Role == models.ROLE_ADMIN)

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
