package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadkart/leadkart/internal/pkg/marketstats"
)

// HandleGetMarketStats returns cached marketplace counters.
func HandleGetMarketStats(c *fiber.Ctx) error {
	stats := marketstats.GetMarketStats()

	return c.JSON(fiber.Map{
		"open_leads":      stats.OpenLeads,
		"today_purchases": stats.TodayPurchases,
		"total_vendors":   stats.TotalVendors,
	})
}
