package quota

import (
	"fmt"
	"time"

	"github.com/leadkart/leadkart/app/models"
)

// recordInput carries everything one ledger row needs.
type recordInput struct {
	VendorID        uint
	LeadID          uint
	ConsumptionType string
	Price           float64
	PlanName        string
	PlanStatus      string
	PurchasedAt     time.Time
}

// recordTemplate is one candidate column set for the ledger insert.
// Templates are tried in order; an unknown-column response advances to the
// next one. The rich shape carries the denormalized plan snapshot, the
// legacy shape only the columns every deployed schema has.
type recordTemplate struct {
	name    string
	columns func(in recordInput) map[string]any
}

var recordTemplates = []recordTemplate{
	{
		name: "rich",
		columns: func(in recordInput) map[string]any {
			return map[string]any{
				"vendor_id":        in.VendorID,
				"lead_id":          in.LeadID,
				"consumption_type": in.ConsumptionType,
				"purchase_price":   in.Price,
				"payment_status":   models.PaymentStatusCompleted,
				"plan_name":        in.PlanName,
				"plan_status":      in.PlanStatus,
				"purchased_at":     in.PurchasedAt,
				"created_at":       in.PurchasedAt,
			}
		},
	},
	{
		name: "legacy",
		columns: func(in recordInput) map[string]any {
			return map[string]any{
				"vendor_id":      in.VendorID,
				"lead_id":        in.LeadID,
				"amount":         in.Price,
				"payment_status": models.PaymentStatusCompleted,
				"purchased_at":   in.PurchasedAt,
			}
		},
	},
}

// recordPurchase writes the consumption ledger row for a (vendor, lead) pair.
//
// Two failure classes are handled here and nowhere else: a unique-constraint
// violation means another request already inserted the pair, so the existing
// row is re-read and returned as success (existing=true); an unknown-column
// response means the rich shape is ahead of the deployed schema, so the next
// template is tried. Anything else is fatal.
//
// On success exactly one row exists for the pair, whichever shape wrote it.
func (s *Service) recordPurchase(in recordInput) (purchase *models.LeadPurchase, existing bool, err error) {
	var lastErr error
	for _, tpl := range recordTemplates {
		insertErr := s.repo.InsertPurchase(tpl.columns(in))
		if insertErr == nil {
			row, readErr := s.repo.GetPurchase(in.VendorID, in.LeadID)
			if readErr != nil {
				return nil, false, readErr
			}
			return row, false, nil
		}

		if isDuplicateEntryErr(insertErr) {
			row, readErr := s.repo.GetPurchase(in.VendorID, in.LeadID)
			if readErr != nil {
				return nil, false, readErr
			}
			return row, true, nil
		}

		if isUnknownColumnErr(insertErr) {
			lastErr = insertErr
			continue
		}

		return nil, false, insertErr
	}

	return nil, false, fmt.Errorf("lead purchase insert rejected by every record shape: %w", lastErr)
}
