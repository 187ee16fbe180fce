package quota

import (
	"context"

	"github.com/leadkart/leadkart/app/models"
)

// Consume is the preferred entry point. It calls the atomic
// consume_lead_quota stored procedure, which performs the validation gates,
// tier selection and ledger insert in a single server-side transaction, so
// concurrent vendors racing for the same lead are properly serialized.
//
// Environments running an older schema do not have the procedure (or the
// daily_reset_at column it reads). Those calls fail with a recognizable
// schema-compatibility error and are transparently re-executed through
// ConsumeFallback. Any other procedure error is fatal and propagates. The
// fallback is a correctness requirement, not a convenience: both paths
// implement the same caller-facing contract with different concurrency
// guarantees.
func (s *Service) Consume(ctx context.Context, in ConsumeInput) (*ConsumeResult, error) {
	in.Mode = NormalizeMode(in.Mode)

	// Input errors never reach the store on either path.
	if in.VendorID == 0 || in.LeadID == 0 {
		return rejected(CodeInvalidInput), nil
	}

	out, err := s.repo.CallConsumeProcedure(in.VendorID, in.LeadID, in.Mode, in.Price)
	if err != nil {
		if isSchemaCompatErr(err) {
			return s.ConsumeFallback(ctx, in)
		}
		return nil, err
	}

	return s.resultFromProcedure(out), nil
}

// resultFromProcedure normalizes the procedure's result row into the shared
// envelope shape.
func (s *Service) resultFromProcedure(out *ProcedureOutcome) *ConsumeResult {
	remaining := Remaining{
		Daily:  clampZero(out.RemainingDaily),
		Weekly: clampZero(out.RemainingWeekly),
		Yearly: clampZero(out.RemainingYearly),
	}

	if !out.Success {
		res := rejected(out.Code)
		res.Remaining = remaining
		res.PlanName = out.PlanName
		return res
	}

	res := &ConsumeResult{
		Success:          true,
		ExistingPurchase: out.ExistingPurchase,
		ConsumptionType:  out.ConsumptionType,
		Remaining:        remaining,
		PlanName:         out.PlanName,
		LeadStatus:       models.LeadStatusPurchased,
	}

	// The row id is enough for the contract; the full record is attached
	// best-effort for parity with the fallback path.
	if out.PurchaseID != 0 {
		if purchase, err := s.repo.GetPurchaseByID(out.PurchaseID); err == nil {
			res.Purchase = purchase
			ts := purchaseTimestamp(purchase)
			res.PurchaseDatetime = &ts
		}
	}

	return res
}
