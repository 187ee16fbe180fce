package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusExpired  = "expired"
)

// VendorSubscription is a vendor's time-bounded enrollment in a plan.
// Status is flipped externally on expiry/renewal; the quota engine only
// reads it. An EndsAt of nil means the enrollment is open-ended.
type VendorSubscription struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	VendorID  uint           `gorm:"not null;index:idx_vendor_subscriptions_vendor_status,priority:1" json:"vendor_id"`
	PlanID    uint           `gorm:"not null;index" json:"plan_id"`
	Plan      Plan           `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Status    string         `gorm:"type:varchar(32);not null;default:'active';index:idx_vendor_subscriptions_vendor_status,priority:2" json:"status"`
	StartsAt  time.Time      `gorm:"type:timestamp;not null" json:"starts_at"`
	EndsAt    *time.Time     `gorm:"type:timestamp;default:null" json:"ends_at,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsCurrentAt reports whether the subscription is considered current at the
// given instant: status active and end date either unset or in the future.
func (s *VendorSubscription) IsCurrentAt(now time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	return s.EndsAt == nil || s.EndsAt.After(now)
}
