package quota

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// resolveEntitlement finds the vendor's current subscription and its plan
// limits. Returns (nil, nil) when no subscription qualifies.
//
// The store already orders and bounds the scan; the end date is re-checked
// client-side against now because the store's notion of "now" may lag the
// caller's (status flips happen in a separate expiry job).
func (s *Service) resolveEntitlement(vendorID uint, now time.Time) (*Entitlement, error) {
	subs, err := s.repo.ListActiveSubscriptions(vendorID)
	if err != nil {
		return nil, err
	}

	for i := range subs {
		sub := &subs[i]
		if !sub.IsCurrentAt(now) {
			continue
		}

		plan, err := s.repo.GetPlanByID(sub.PlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Subscription points at a deleted plan; treat as not entitled.
				continue
			}
			return nil, err
		}

		return &Entitlement{
			Subscription: sub,
			Plan:         plan,
			PlanName:     plan.Name,
			Limits: Limits{
				Daily:  sanitizeLimit(plan.DailyLimit),
				Weekly: sanitizeLimit(plan.WeeklyLimit),
				Yearly: sanitizeLimit(plan.YearlyLimit),
			},
		}, nil
	}

	return nil, nil
}

// sanitizeLimit collapses negative stored values to 0, matching the
// "no included quota" meaning of a zero limit.
func sanitizeLimit(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
