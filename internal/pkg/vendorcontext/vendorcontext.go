package vendorcontext

import "github.com/gofiber/fiber/v2"

// Locals keys set by the API key middleware
const (
	KeyVendorContext = "VENDOR_CONTEXT"
	KeyFromProtected = "FROM_PROTECTED"
	KeyVendorID      = "VENDOR_ID"
	KeyVendorName    = "VENDOR_NAME"
	KeyIsAdmin       = "IS_ADMIN"
)

// VendorContext represents the complete vendor context for a request
type VendorContext struct {
	VendorID        uint   `json:"vendor_id"`
	Name            string `json:"name"`
	CompanyName     string `json:"company_name"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsAdmin         bool   `json:"is_admin"`
	KYCStatus       string `json:"kyc_status"`
}

// GetVendorContext retrieves the vendor context from fiber context.
// Returns a default anonymous context if none is set.
func GetVendorContext(c *fiber.Ctx) VendorContext {
	if ctx := c.Locals(KeyVendorContext); ctx != nil {
		return ctx.(VendorContext)
	}
	return VendorContext{IsAuthenticated: false, IsAdmin: false}
}

// IsAuthenticated checks if the current request carries a valid vendor identity
func IsAuthenticated(c *fiber.Ctx) bool {
	return GetVendorContext(c).IsAuthenticated
}

// IsAdmin checks if the current vendor has the admin role
func IsAdmin(c *fiber.Ctx) bool {
	return GetVendorContext(c).IsAdmin
}

// GetVendorID returns the current vendor's ID, or 0 if unauthenticated
func GetVendorID(c *fiber.Ctx) uint {
	return GetVendorContext(c).VendorID
}

// GetVendorName returns the current vendor's name, or empty string if unauthenticated
func GetVendorName(c *fiber.Ctx) string {
	return GetVendorContext(c).Name
}
