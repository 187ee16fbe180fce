package quota

import (
	"context"
	"errors"
	"time"

	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// Service is the lead quota consumption engine. It decides, per
// (vendor, lead) pair, whether an acquisition is covered by the vendor's
// subscribed quota tier or must be bought as a paid extra, and records the
// outcome exactly once.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a quota service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a quota service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// ConsumeFallback runs the multi-step consumption path: validation gates,
// tier selection, ledger insert, counter update and snapshot sync as
// separate store round trips.
//
// Unlike Consume, this path is not transactional. Two concurrent requests
// for the same pair can both pass the existing-purchase gate; the unique
// index on (vendor_id, lead_id) is the backstop and is handled as an
// idempotent success. The per-lead buyer cap check is racy here: two
// concurrent requests from different vendors can both read a count of 4
// and both insert. Only the stored-procedure path closes that window.
func (s *Service) ConsumeFallback(ctx context.Context, in ConsumeInput) (*ConsumeResult, error) {
	_ = ctx
	in.Mode = NormalizeMode(in.Mode)
	now := s.now()

	if in.VendorID == 0 || in.LeadID == 0 {
		return rejected(CodeInvalidInput), nil
	}

	lead, err := s.repo.GetLeadByID(in.LeadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rejected(CodeLeadNotFound), nil
		}
		return nil, err
	}
	if !lead.IsConsumable() {
		return rejected(CodeLeadUnavailable), nil
	}
	if lead.VendorID != nil && *lead.VendorID != in.VendorID {
		return rejected(CodeLeadNotPurchasable), nil
	}

	ent, err := s.resolveEntitlement(in.VendorID, now)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return rejected(CodeSubscriptionInactive), nil
	}

	purchases, err := s.repo.ListVendorPurchases(in.VendorID)
	if err != nil {
		return nil, err
	}
	used := countUsage(purchases, now)

	// Idempotent replay: a second request for an already-consumed pair is a
	// success carrying the original record, never a conflict.
	if existing, err := s.repo.GetPurchase(in.VendorID, in.LeadID); err == nil {
		return s.replayResult(existing, lead, ent, used), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	holders, err := s.repo.CountLeadPurchases(in.LeadID)
	if err != nil {
		return nil, err
	}
	if holders >= models.MaxVendorsPerLead {
		return rejected(CodeLeadCapReached), nil
	}

	remaining := RemainingFrom(ent.Limits, used)
	tier, reject := selectTier(remaining, in.Mode)
	if reject != "" {
		res := rejected(reject)
		res.Remaining = remaining
		res.PlanName = ent.PlanName
		return res, nil
	}

	price := 0.0
	if tier == models.ConsumptionPaidExtra {
		price = in.Price
	}

	purchase, existing, err := s.recordPurchase(recordInput{
		VendorID:        in.VendorID,
		LeadID:          in.LeadID,
		ConsumptionType: tier,
		Price:           price,
		PlanName:        ent.PlanName,
		PlanStatus:      ent.Subscription.Status,
		PurchasedAt:     now,
	})
	if err != nil {
		return nil, err
	}
	if existing {
		// Lost the insert race; the winner already consumed the pair.
		return s.replayResult(purchase, lead, ent, used), nil
	}

	used = applyConsumption(used, purchase.ConsumptionType)
	remaining = RemainingFrom(ent.Limits, used)

	s.syncSnapshot(in.VendorID, ent.Plan.ID, ent.Limits, used, now)

	if err := s.repo.MarkLeadPurchased(in.LeadID); err != nil {
		return nil, err
	}

	ts := purchaseTimestamp(purchase)
	return &ConsumeResult{
		Success:          true,
		ExistingPurchase: false,
		ConsumptionType:  purchase.ConsumptionType,
		Remaining:        remaining,
		PurchaseDatetime: &ts,
		PlanName:         ent.PlanName,
		LeadStatus:       models.LeadStatusPurchased,
		Purchase:         purchase,
	}, nil
}

// selectTier picks the consumption tier from remaining figures and the
// requested mode, or returns the rejection code that applies.
//
// The yearly cap is a hard ceiling checked first. Daily quota is preferred
// over weekly when both are open. An explicit paid mode always wins, even
// while included quota remains ("buy extra now").
func selectTier(remaining Remaining, mode string) (tier string, reject string) {
	forcePaid := IsPaidMode(mode)

	if remaining.Yearly <= 0 {
		if !forcePaid {
			return "", CodePaidRequired
		}
		return models.ConsumptionPaidExtra, ""
	}

	if remaining.Daily > 0 {
		if forcePaid {
			return models.ConsumptionPaidExtra, ""
		}
		return models.ConsumptionDailyIncluded, ""
	}

	if remaining.Weekly > 0 {
		if forcePaid {
			return models.ConsumptionPaidExtra, ""
		}
		return models.ConsumptionWeeklyIncluded, ""
	}

	if !forcePaid {
		return "", CodePaidRequired
	}
	return models.ConsumptionPaidExtra, ""
}

// applyConsumption reflects a freshly recorded purchase in the in-memory
// counters, mirroring exactly what countUsage would see on a re-read.
func applyConsumption(used Usage, consumptionType string) Usage {
	switch consumptionType {
	case models.ConsumptionDailyIncluded:
		used.Daily++
		used.Weekly++
		used.Yearly++
	case models.ConsumptionWeeklyIncluded:
		used.Weekly++
		used.Yearly++
	}
	return used
}

// replayResult builds the success envelope for an already-consumed pair.
// Counters are untouched: the original consumption is already part of used.
func (s *Service) replayResult(purchase *models.LeadPurchase, lead *models.Lead, ent *Entitlement, used Usage) *ConsumeResult {
	ts := purchaseTimestamp(purchase)
	planName := purchase.PlanName
	if planName == "" {
		planName = ent.PlanName
	}
	return &ConsumeResult{
		Success:          true,
		ExistingPurchase: true,
		ConsumptionType:  purchase.ConsumptionType,
		Remaining:        RemainingFrom(ent.Limits, used),
		PurchaseDatetime: &ts,
		PlanName:         planName,
		LeadStatus:       lead.Status,
		Purchase:         purchase,
	}
}
