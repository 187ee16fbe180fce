package quota

import (
	"time"

	"github.com/leadkart/leadkart/app/models"
)

// countUsage tallies included-tier consumptions inside the active windows.
// Counting from raw history rather than the snapshot keeps the engine correct
// even when the snapshot was never written or went stale.
//
// Yearly counts every included row since January 1st, weekly every included
// row since Monday, daily only day-tier rows since midnight. Paid extras are
// excluded from all counters.
func countUsage(purchases []models.LeadPurchase, now time.Time) Usage {
	dayStart := StartOfDay(now)
	weekStart := StartOfWeek(now)
	yearStart := StartOfYear(now)

	var used Usage
	for i := range purchases {
		p := &purchases[i]
		if !p.IsIncluded() {
			continue
		}

		ts := purchaseTimestamp(p)
		if !ts.Before(yearStart) {
			used.Yearly++
		}
		if !ts.Before(weekStart) {
			used.Weekly++
		}
		if p.ConsumptionType == models.ConsumptionDailyIncluded && !ts.Before(dayStart) {
			used.Daily++
		}
	}
	return used
}

// CountUsageForVendor recomputes a vendor's usage from the ledger. Exposed
// for dashboard rebuilds of the quota snapshot.
func (s *Service) CountUsageForVendor(vendorID uint, now time.Time) (Usage, error) {
	purchases, err := s.repo.ListVendorPurchases(vendorID)
	if err != nil {
		return Usage{}, err
	}
	return countUsage(purchases, now), nil
}
