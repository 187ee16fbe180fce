package quota

import "github.com/gofiber/fiber/v2"

// Rejection codes surfaced to the caller. These are expected domain outcomes,
// not failures, and are stable API contract values.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeLeadNotFound         = "LEAD_NOT_FOUND"
	CodeLeadUnavailable      = "LEAD_UNAVAILABLE"
	CodeLeadNotPurchasable   = "LEAD_NOT_PURCHASABLE"
	CodeLeadCapReached       = "LEAD_CAP_REACHED"
	CodeSubscriptionInactive = "SUBSCRIPTION_INACTIVE"
	CodePaidRequired         = "PAID_REQUIRED"
)

var rejectionMessages = map[string]string{
	CodeInvalidInput:         "vendor id and lead id are required",
	CodeLeadNotFound:         "lead not found",
	CodeLeadUnavailable:      "lead is no longer available",
	CodeLeadNotPurchasable:   "lead is reserved for another vendor",
	CodeLeadCapReached:       "lead has reached its maximum number of buyers",
	CodeSubscriptionInactive: "no active subscription",
	CodePaidRequired:         "included quota exhausted, paid purchase required",
}

var rejectionStatus = map[string]int{
	CodeInvalidInput:         fiber.StatusBadRequest,
	CodeLeadNotFound:         fiber.StatusNotFound,
	CodeLeadUnavailable:      fiber.StatusConflict,
	CodeLeadNotPurchasable:   fiber.StatusConflict,
	CodeLeadCapReached:       fiber.StatusConflict,
	CodeSubscriptionInactive: fiber.StatusForbidden,
	CodePaidRequired:         fiber.StatusPaymentRequired,
}

// StatusCodeFor maps a rejection code to its HTTP status. Unrecognized codes
// map to 400.
func StatusCodeFor(code string) int {
	if status, ok := rejectionStatus[code]; ok {
		return status
	}
	return fiber.StatusBadRequest
}

// MessageFor returns the stable human-readable message for a rejection code.
func MessageFor(code string) string {
	if msg, ok := rejectionMessages[code]; ok {
		return msg
	}
	return "request rejected"
}

func rejected(code string) *ConsumeResult {
	return &ConsumeResult{
		Success: false,
		Code:    code,
		Error:   MessageFor(code),
	}
}
