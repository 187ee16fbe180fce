package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/leadkart/leadkart/app/models"
	"github.com/leadkart/leadkart/app/repository"
	"github.com/leadkart/leadkart/internal/pkg/database"
	"github.com/leadkart/leadkart/internal/pkg/quota"
	"github.com/leadkart/leadkart/internal/pkg/vendorcontext"
)

// HandleGetVendorAccount returns account information plus the current quota
// overview for the authenticated vendor.
func HandleGetVendorAccount(c *fiber.Ctx) error {
	vendorCtx := vendorcontext.GetVendorContext(c)
	if !vendorCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetVendorRepository()
	vendor, err := repo.GetByID(vendorCtx.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Vendor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load vendor"})
	}

	svc := quota.NewServiceFromDB(database.GetDB())
	overview, err := svc.Overview(c.Context(), vendor.ID)
	if err != nil {
		log.Printf("quota overview failed for vendor %d: %v", vendor.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load quota"})
	}

	purchaseRepo := repository.GetGlobalFactory().GetPurchaseRepository()
	purchaseCount, err := purchaseRepo.CountByVendorID(vendor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load statistics"})
	}

	return c.JSON(fiber.Map{
		"id":                   vendor.ID,
		"name":                 vendor.Name,
		"email":                vendor.Email,
		"company_name":         vendor.CompanyName,
		"status":               vendor.Status,
		"kyc_status":           vendor.KYCStatus,
		"is_admin":             vendor.Role == models.ROLE_ADMIN,
		"created_at":           vendor.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(vendor.LastLoginAt),
		"api_key_last_used_at": formatTimePtr(vendor.APIKeyLastUsedAt),
		"quota":                overview,
		"stats": fiber.Map{
			"purchases": fiber.Map{
				"count": purchaseCount,
			},
		},
	})
}

// HandleListVendorPurchases returns the authenticated vendor's purchase
// ledger, newest first.
func HandleListVendorPurchases(c *fiber.Ctx) error {
	vendorCtx := vendorcontext.GetVendorContext(c)
	if !vendorCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetPurchaseRepository()

	purchases, err := repo.ListByVendorID(vendorCtx.VendorID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load purchases"})
	}

	total, err := repo.CountByVendorID(vendorCtx.VendorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count purchases"})
	}

	return c.JSON(fiber.Map{
		"purchases": purchases,
		"total":     total,
	})
}

// HandleGenerateAPIKey issues a fresh API key for the authenticated vendor.
// The raw key is returned exactly once.
func HandleGenerateAPIKey(c *fiber.Ctx) error {
	vendorCtx := vendorcontext.GetVendorContext(c)
	if !vendorCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetVendorRepository()
	vendor, err := repo.GetByID(vendorCtx.VendorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load vendor"})
	}

	rawKey, err := vendor.GenerateAPIKey()
	if err != nil {
		log.Printf("api key generation failed for vendor %d: %v", vendor.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "API key generation failed"})
	}
	if err := repo.Update(vendor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store API key"})
	}

	return c.JSON(fiber.Map{
		"api_key":    rawKey,
		"prefix":     vendor.APIKeyPrefix,
		"created_at": formatTimePtr(vendor.APIKeyCreatedAt),
	})
}
