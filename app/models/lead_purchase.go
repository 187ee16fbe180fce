package models

import "time"

// Consumption tiers recorded on a lead purchase. The values are part of the
// API contract and are stored verbatim.
const (
	ConsumptionDailyIncluded  = "DAILY_INCLUDED"
	ConsumptionWeeklyIncluded = "WEEKLY_INCLUDED"
	ConsumptionPaidExtra      = "PAID_EXTRA"
)

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

// LeadPurchase is one row of the consumption ledger. Exactly one row may
// exist per (vendor, lead) pair, enforced by ux_lead_purchases_vendor_lead
// and defended again in the quota engine. Rows are never updated or deleted.
//
// PlanName and PlanStatus are denormalized snapshot columns that older
// schemas do not have; inserts fall back to the legacy column set when the
// store rejects them.
type LeadPurchase struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	VendorID        uint      `gorm:"not null;index:ux_lead_purchases_vendor_lead,unique,priority:1" json:"vendor_id"`
	LeadID          uint      `gorm:"not null;index:ux_lead_purchases_vendor_lead,unique,priority:2;index" json:"lead_id"`
	ConsumptionType string    `gorm:"type:varchar(32);not null;default:'PAID_EXTRA'" json:"consumption_type"`
	PurchasePrice   float64   `gorm:"type:decimal(10,2);not null;default:0" json:"purchase_price"`
	PaymentStatus   string    `gorm:"type:varchar(32);not null;default:'completed'" json:"payment_status"`
	PlanName        string    `gorm:"type:varchar(150);default:''" json:"plan_name"`
	PlanStatus      string    `gorm:"type:varchar(32);default:''" json:"plan_status"`
	PurchasedAt     time.Time `gorm:"type:timestamp;not null;index" json:"purchased_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (LeadPurchase) TableName() string { return "lead_purchases" }

// IsIncluded reports whether the purchase was covered by subscription quota.
func (p *LeadPurchase) IsIncluded() bool {
	return p.ConsumptionType == ConsumptionDailyIncluded || p.ConsumptionType == ConsumptionWeeklyIncluded
}
