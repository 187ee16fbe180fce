package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadkart/leadkart/app/repository"
)

// HandleListPlans returns all plans open for subscription.
func HandleListPlans(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPlanRepository()

	plans, err := repo.GetActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}

	return c.JSON(fiber.Map{"plans": plans})
}
