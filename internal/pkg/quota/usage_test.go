package quota

import (
	"testing"
	"time"

	"github.com/leadkart/leadkart/app/models"
	"github.com/stretchr/testify/assert"
)

func purchaseAt(ctype string, at time.Time) models.LeadPurchase {
	return models.LeadPurchase{ConsumptionType: ctype, PurchasedAt: at}
}

func TestCountUsage(t *testing.T) {
	// Thursday 2024-03-07; week starts Monday 2024-03-04.
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	purchases := []models.LeadPurchase{
		// Today: counts daily, weekly, yearly.
		purchaseAt(models.ConsumptionDailyIncluded, time.Date(2024, 3, 7, 1, 0, 0, 0, time.UTC)),
		// Earlier this week: daily tier but before today, so weekly+yearly only.
		purchaseAt(models.ConsumptionDailyIncluded, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)),
		// Weekly tier this week: weekly+yearly, never daily.
		purchaseAt(models.ConsumptionWeeklyIncluded, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)),
		// Last week: yearly only.
		purchaseAt(models.ConsumptionWeeklyIncluded, time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)),
		// Last year: no counter.
		purchaseAt(models.ConsumptionDailyIncluded, time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC)),
		// Paid extras never count.
		purchaseAt(models.ConsumptionPaidExtra, time.Date(2024, 3, 7, 2, 0, 0, 0, time.UTC)),
	}

	used := countUsage(purchases, now)
	assert.Equal(t, Usage{Daily: 1, Weekly: 3, Yearly: 4}, used)
}

func TestCountUsageWeekBoundary(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	onBoundary := []models.LeadPurchase{
		purchaseAt(models.ConsumptionWeeklyIncluded, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
	}
	assert.Equal(t, 1, countUsage(onBoundary, now).Weekly, "Monday midnight belongs to the current week")

	beforeBoundary := []models.LeadPurchase{
		purchaseAt(models.ConsumptionWeeklyIncluded, time.Date(2024, 3, 3, 23, 59, 59, 0, time.UTC)),
	}
	assert.Equal(t, 0, countUsage(beforeBoundary, now).Weekly, "Sunday night belongs to the previous week")
}

func TestCountUsageLegacyTimestampFallback(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	// Legacy rows can carry a zero purchased_at; created_at stands in.
	legacy := models.LeadPurchase{
		ConsumptionType: models.ConsumptionDailyIncluded,
		CreatedAt:       time.Date(2024, 3, 7, 3, 0, 0, 0, time.UTC),
	}
	used := countUsage([]models.LeadPurchase{legacy}, now)
	assert.Equal(t, Usage{Daily: 1, Weekly: 1, Yearly: 1}, used)
}
