package quota

import (
	"errors"
	"log"
	"time"

	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// syncSnapshot writes the vendor's current limits and usage into the
// denormalized vendor_quotas row for fast dashboard reads. This is a
// best-effort cache write: every failure is logged and swallowed, it must
// never fail the consumption that triggered it.
func (s *Service) syncSnapshot(vendorID, planID uint, limits Limits, used Usage, now time.Time) {
	snap, err := s.repo.GetQuotaSnapshot(vendorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("quota snapshot read failed for vendor %d: %v", vendorID, err)
		return
	}

	if snap == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		snap = &models.VendorQuota{VendorID: vendorID}
	}
	snap.PlanID = planID
	snap.DailyLimit = limits.Daily
	snap.WeeklyLimit = limits.Weekly
	snap.YearlyLimit = limits.Yearly
	snap.DailyUsed = used.Daily
	snap.WeeklyUsed = used.Weekly
	snap.YearlyUsed = used.Yearly
	snap.UpdatedAt = now

	if snap.ID == 0 {
		if err := s.repo.CreateQuotaSnapshot(snap); err != nil {
			log.Printf("quota snapshot insert failed for vendor %d: %v", vendorID, err)
		}
		return
	}
	if err := s.repo.SaveQuotaSnapshot(snap); err != nil {
		log.Printf("quota snapshot update failed for vendor %d: %v", vendorID, err)
	}
}
