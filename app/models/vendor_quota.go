package models

import "time"

// VendorQuota is a denormalized per-vendor snapshot of limits and usage for
// fast dashboard reads. It is not authoritative: the quota engine recomputes
// usage from lead_purchases and overwrites this row after every successful
// consumption, so the row is safe to lose or rebuild.
type VendorQuota struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VendorID    uint      `gorm:"uniqueIndex;not null" json:"vendor_id"`
	PlanID      uint      `gorm:"not null" json:"plan_id"`
	DailyLimit  int       `gorm:"not null;default:0" json:"daily_limit"`
	WeeklyLimit int       `gorm:"not null;default:0" json:"weekly_limit"`
	YearlyLimit int       `gorm:"not null;default:0" json:"yearly_limit"`
	DailyUsed   int       `gorm:"not null;default:0" json:"daily_used"`
	WeeklyUsed  int       `gorm:"not null;default:0" json:"weekly_used"`
	YearlyUsed  int       `gorm:"not null;default:0" json:"yearly_used"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Remaining returns the remaining included quota per window, floored at zero.
func (q *VendorQuota) Remaining() (daily, weekly, yearly int) {
	return maxInt(q.DailyLimit-q.DailyUsed, 0),
		maxInt(q.WeeklyLimit-q.WeeklyUsed, 0),
		maxInt(q.YearlyLimit-q.YearlyUsed, 0)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
