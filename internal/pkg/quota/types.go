package quota

import (
	"strings"
	"time"

	"github.com/leadkart/leadkart/app/models"
)

// Consumption modes accepted on the wire. BuyExtra and Paid are equivalent
// "force paid" signals; anything unrecognized normalizes to Auto.
const (
	ModeAuto      = "auto"
	ModeUseWeekly = "use_weekly"
	ModeBuyExtra  = "buy_extra"
	ModePaid      = "paid"
)

// NormalizeMode maps any caller-supplied mode string onto a known mode.
func NormalizeMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeUseWeekly:
		return ModeUseWeekly
	case ModeBuyExtra:
		return ModeBuyExtra
	case ModePaid:
		return ModePaid
	default:
		return ModeAuto
	}
}

// IsPaidMode reports whether the mode forces a paid-extra consumption.
func IsPaidMode(mode string) bool {
	return mode == ModeBuyExtra || mode == ModePaid
}

// ConsumeInput is the validated tuple handed in by the HTTP layer.
type ConsumeInput struct {
	VendorID uint
	LeadID   uint
	Mode     string
	Price    float64
}

// Limits are a plan's included-lead allowances per quota window.
type Limits struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
	Yearly int `json:"yearly"`
}

// Usage counts included-tier consumptions inside the active windows.
// Paid extras never count against any window.
type Usage struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
	Yearly int `json:"yearly"`
}

// Remaining is limit minus used per window, floored at zero.
type Remaining struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
	Yearly int `json:"yearly"`
}

// RemainingFrom derives remaining figures from limits and usage.
func RemainingFrom(limits Limits, used Usage) Remaining {
	return Remaining{
		Daily:  clampZero(limits.Daily - used.Daily),
		Weekly: clampZero(limits.Weekly - used.Weekly),
		Yearly: clampZero(limits.Yearly - used.Yearly),
	}
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Entitlement bundles a vendor's current subscription with its plan limits.
type Entitlement struct {
	Subscription *models.VendorSubscription
	Plan         *models.Plan
	PlanName     string
	Limits       Limits
}

// ConsumeResult is the normalized outcome of one consumption attempt,
// successful or rejected. Store failures are returned as errors instead.
type ConsumeResult struct {
	Success          bool                 `json:"success"`
	ExistingPurchase bool                 `json:"existing_purchase,omitempty"`
	ConsumptionType  string               `json:"consumption_type,omitempty"`
	Remaining        Remaining            `json:"remaining"`
	PurchaseDatetime *time.Time           `json:"purchase_datetime,omitempty"`
	PlanName         string               `json:"plan_name,omitempty"`
	LeadStatus       string               `json:"lead_status,omitempty"`
	Purchase         *models.LeadPurchase `json:"purchase,omitempty"`
	Code             string               `json:"code,omitempty"`
	Error            string               `json:"error,omitempty"`
}

// StatusCode returns the HTTP status the envelope should be sent with.
func (r *ConsumeResult) StatusCode() int {
	if r.Success {
		return 200
	}
	return StatusCodeFor(r.Code)
}
