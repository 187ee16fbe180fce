package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/leadkart/leadkart/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumePrefersProcedureOutcome(t *testing.T) {
	f := newFakeRepo()
	purchase := f.addPurchase(models.LeadPurchase{VendorID: 1, LeadID: 2, ConsumptionType: models.ConsumptionDailyIncluded, PurchasedAt: testNow})
	f.procOutcome = &ProcedureOutcome{
		Success:         true,
		ConsumptionType: models.ConsumptionDailyIncluded,
		PurchaseID:      purchase.ID,
		RemainingDaily:  0,
		RemainingWeekly: 2,
		RemainingYearly: 99,
		PlanName:        "Growth",
	}
	s := newTestService(f)

	res, err := s.Consume(context.Background(), ConsumeInput{VendorID: 1, LeadID: 2})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, models.ConsumptionDailyIncluded, res.ConsumptionType)
	assert.Equal(t, Remaining{Daily: 0, Weekly: 2, Yearly: 99}, res.Remaining)
	assert.Equal(t, "Growth", res.PlanName)
	require.NotNil(t, res.Purchase)
	assert.Equal(t, purchase.ID, res.Purchase.ID)
	assert.Equal(t, 1, f.procCalls)
}

func TestConsumeProcedureRejection(t *testing.T) {
	f := newFakeRepo()
	f.procOutcome = &ProcedureOutcome{
		Success:         false,
		Code:            CodePaidRequired,
		RemainingYearly: 0,
		PlanName:        "Starter",
	}
	s := newTestService(f)

	res, err := s.Consume(context.Background(), ConsumeInput{VendorID: 1, LeadID: 2})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, CodePaidRequired, res.Code)
	assert.Equal(t, 402, res.StatusCode())
	assert.Equal(t, "Starter", res.PlanName)
}

func TestConsumeFallsBackWhenProcedureMissing(t *testing.T) {
	f := newFakeRepo()
	seedVendorPlan(f, 1, 1, 3, 100)
	lead := f.addLead(models.Lead{Title: "Lead"})
	// Default fake behavior: error 1305, the procedure is not deployed.
	s := newTestService(f)

	res, err := s.Consume(context.Background(), ConsumeInput{VendorID: 1, LeadID: lead.ID})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, models.ConsumptionDailyIncluded, res.ConsumptionType)
	assert.Equal(t, 1, f.procCalls)
	assert.Len(t, f.purchases, 1, "fallback path recorded the purchase")
}

func TestConsumeFallsBackOnMissingColumn(t *testing.T) {
	f := newFakeRepo()
	seedVendorPlan(f, 1, 1, 3, 100)
	lead := f.addLead(models.Lead{Title: "Lead"})
	f.procErr = &mysql.MySQLError{Number: mysqlErrUnknownColumn, Message: "Unknown column 'daily_reset_at' in 'field list'"}
	s := newTestService(f)

	res, err := s.Consume(context.Background(), ConsumeInput{VendorID: 1, LeadID: lead.ID})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestConsumeOtherProcedureErrorIsFatal(t *testing.T) {
	f := newFakeRepo()
	seedVendorPlan(f, 1, 1, 3, 100)
	lead := f.addLead(models.Lead{Title: "Lead"})
	boom := errors.New("driver: bad connection")
	f.procErr = boom
	s := newTestService(f)

	_, err := s.Consume(context.Background(), ConsumeInput{VendorID: 1, LeadID: lead.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.purchases, "no fallback on non-schema errors")
}

func TestConsumeRejectsInvalidInputBeforeAnyIO(t *testing.T) {
	f := newFakeRepo()
	s := newTestService(f)

	res, err := s.Consume(context.Background(), ConsumeInput{VendorID: 0, LeadID: 0})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, CodeInvalidInput, res.Code)
	assert.Zero(t, f.procCalls)
}
