package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/leadkart/leadkart/app/controllers"
	"github.com/leadkart/leadkart/internal/pkg/middleware"
)

// Pong is the response of the ping endpoint
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the public v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches all v1 routes to the given router group.
// Endpoints touching vendor identity or quota sit behind the API key
// middleware; the marketplace catalog and ping stay public.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/stats", s.GetMarketStats)
	router.Get("/plans", s.GetPlans)
	router.Get("/leads", s.GetLeads)

	protected := router.Group("", middleware.APIKeyAuthMiddleware())
	protected.Get("/leads/:uuid", s.GetLead)
	protected.Post("/leads/:uuid/consume", s.PostConsumeLead)
	protected.Post("/leads", s.PostLead)
	protected.Get("/vendor/profile", s.GetVendorProfile)
	protected.Get("/vendor/purchases", s.GetVendorPurchases)
	protected.Post("/vendor/api-key", s.PostVendorAPIKey)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetMarketStats returns cached marketplace counters (public)
func (s *APIServer) GetMarketStats(c *fiber.Ctx) error {
	return controllers.HandleGetMarketStats(c)
}

// GetPlans returns the subscribable plan catalog (public)
func (s *APIServer) GetPlans(c *fiber.Ctx) error {
	return controllers.HandleListPlans(c)
}

// GetLeads returns open marketplace leads (public, contact data redacted)
func (s *APIServer) GetLeads(c *fiber.Ctx) error {
	return controllers.HandleListLeads(c)
}

// GetLead returns a single lead by UUID (API key protected).
// Delegates to the existing controller for consistent response shape.
func (s *APIServer) GetLead(c *fiber.Ctx) error {
	return controllers.HandleGetLeadResource(c)
}

// PostConsumeLead acquires a lead against the vendor's quota.
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) PostConsumeLead(c *fiber.Ctx) error {
	return controllers.HandleConsumeLead(c)
}

// PostLead registers a new lead (admin only, checked in the controller)
func (s *APIServer) PostLead(c *fiber.Ctx) error {
	return controllers.HandleCreateLead(c)
}

// GetVendorProfile returns account information for the authenticated vendor (API key).
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) GetVendorProfile(c *fiber.Ctx) error {
	return controllers.HandleGetVendorAccount(c)
}

// GetVendorPurchases returns the authenticated vendor's purchase ledger
func (s *APIServer) GetVendorPurchases(c *fiber.Ctx) error {
	return controllers.HandleListVendorPurchases(c)
}

// PostVendorAPIKey rotates the authenticated vendor's API key
func (s *APIServer) PostVendorAPIKey(c *fiber.Ctx) error {
	return controllers.HandleGenerateAPIKey(c)
}
