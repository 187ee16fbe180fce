package quota

import "context"

// Overview summarizes a vendor's current entitlement and window usage for
// the account dashboard. Read-only: it never touches the snapshot row.
type Overview struct {
	Active    bool      `json:"active"`
	PlanName  string    `json:"plan_name,omitempty"`
	Limits    Limits    `json:"limits"`
	Used      Usage     `json:"used"`
	Remaining Remaining `json:"remaining"`
}

// Overview recomputes usage from the purchase ledger against the vendor's
// current entitlement. Vendors without a current subscription get a zeroed
// overview with Active false.
func (s *Service) Overview(ctx context.Context, vendorID uint) (*Overview, error) {
	_ = ctx
	now := s.now()

	ent, err := s.resolveEntitlement(vendorID, now)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return &Overview{}, nil
	}

	used, err := s.CountUsageForVendor(vendorID, now)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Active:    true,
		PlanName:  ent.PlanName,
		Limits:    ent.Limits,
		Used:      used,
		Remaining: RemainingFrom(ent.Limits, used),
	}, nil
}
