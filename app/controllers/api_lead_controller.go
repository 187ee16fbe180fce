package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/leadkart/leadkart/app/models"
	"github.com/leadkart/leadkart/app/repository"
	"github.com/leadkart/leadkart/internal/pkg/database"
	"github.com/leadkart/leadkart/internal/pkg/metrics/counter"
	"github.com/leadkart/leadkart/internal/pkg/quota"
	"github.com/leadkart/leadkart/internal/pkg/vendorcontext"
)

// consumeRequest is the optional JSON body of the consume endpoint.
type consumeRequest struct {
	Mode  string  `json:"mode"`
	Price float64 `json:"price"`
}

// HandleListLeads returns open marketplace leads, optionally filtered by
// category and region.
func HandleListLeads(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetLeadRepository()

	leads, err := repo.ListAvailable(c.Query("category"), c.Query("region"), offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load leads"})
	}

	total, err := repo.CountAvailable()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count leads"})
	}

	return c.JSON(fiber.Map{
		"leads": leads,
		"total": total,
	})
}

// HandleGetLeadResource returns a single lead by its public UUID.
// Contact details are only included when the requesting vendor holds a
// purchase on the lead.
func HandleGetLeadResource(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "uuid missing"})
	}

	repo := repository.GetGlobalFactory().GetLeadRepository()
	lead, err := repo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Lead not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load lead"})
	}

	if err := counter.AddLeadView(lead.ID); err != nil {
		log.Printf("failed to record lead view for %d: %v", lead.ID, err)
	}

	vendorCtx := vendorcontext.GetVendorContext(c)
	purchased := false
	if vendorCtx.IsAuthenticated {
		purchaseRepo := repository.GetGlobalFactory().GetPurchaseRepository()
		if _, err := purchaseRepo.GetByVendorAndLead(vendorCtx.VendorID, lead.ID); err == nil {
			purchased = true
		}
	}

	response := fiber.Map{
		"id":         lead.ID,
		"uuid":       lead.UUID,
		"title":      lead.Title,
		"category":   lead.Category,
		"region":     lead.Region,
		"budget_min": lead.BudgetMin,
		"budget_max": lead.BudgetMax,
		"status":     lead.Status,
		"purchased":  purchased,
		"created_at": lead.CreatedAt,
	}
	if purchased {
		response["description"] = lead.Description
		response["contact_name"] = lead.ContactName
		response["contact_phone"] = lead.ContactPhone
		response["contact_email"] = lead.ContactEmail
		response["details"] = lead.Details
	}

	return c.JSON(response)
}

// HandleConsumeLead acquires a lead against the vendor's quota. The engine
// decides the consumption tier and returns a normalized envelope; the HTTP
// status comes straight from the envelope code.
func HandleConsumeLead(c *fiber.Ctx) error {
	vendorCtx := vendorcontext.GetVendorContext(c)
	if !vendorCtx.IsAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	uuid := c.Params("uuid")
	if uuid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "uuid missing"})
	}

	var req consumeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
		}
	}
	if req.Price < 0 {
		return c.Status(quota.StatusCodeFor(quota.CodeInvalidInput)).JSON(fiber.Map{
			"success": false,
			"code":    quota.CodeInvalidInput,
			"error":   quota.MessageFor(quota.CodeInvalidInput),
		})
	}

	leadRepo := repository.GetGlobalFactory().GetLeadRepository()
	lead, err := leadRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(quota.StatusCodeFor(quota.CodeLeadNotFound)).JSON(fiber.Map{
				"success": false,
				"code":    quota.CodeLeadNotFound,
				"error":   quota.MessageFor(quota.CodeLeadNotFound),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load lead"})
	}

	svc := quota.NewServiceFromDB(database.GetDB())
	res, err := svc.Consume(c.Context(), quota.ConsumeInput{
		VendorID: vendorCtx.VendorID,
		LeadID:   lead.ID,
		Mode:     req.Mode,
		Price:    req.Price,
	})
	if err != nil {
		log.Printf("lead consumption failed for vendor %d, lead %d: %v", vendorCtx.VendorID, lead.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Lead consumption failed"})
	}

	return c.Status(res.StatusCode()).JSON(res)
}

// HandleCreateLead registers a new lead. Admin only.
func HandleCreateLead(c *fiber.Ctx) error {
	vendorCtx := vendorcontext.GetVendorContext(c)
	if !vendorCtx.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Admin access required"})
	}

	var lead models.Lead
	if err := c.BodyParser(&lead); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if lead.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Title is required"})
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusAvailable
	}

	repo := repository.GetGlobalFactory().GetLeadRepository()
	if err := repo.Create(&lead); err != nil {
		log.Printf("failed to create lead: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create lead"})
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}
