package quota

import (
	"errors"
	"time"

	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// subscriptionScanLimit bounds the active-subscription scan. Vendors carry a
// handful of rows at most; the limit defends against unbounded scans on
// corrupted data.
const subscriptionScanLimit = 10

// ProcedureOutcome is the single result row returned by the atomic
// consume_lead_quota stored procedure.
type ProcedureOutcome struct {
	Success          bool    `gorm:"column:success"`
	Code             string  `gorm:"column:code"`
	ConsumptionType  string  `gorm:"column:consumption_type"`
	PurchaseID       uint    `gorm:"column:purchase_id"`
	RemainingDaily   int     `gorm:"column:remaining_daily"`
	RemainingWeekly  int     `gorm:"column:remaining_weekly"`
	RemainingYearly  int     `gorm:"column:remaining_yearly"`
	PlanName         string  `gorm:"column:plan_name"`
	ExistingPurchase bool    `gorm:"column:existing_purchase"`
	PurchasePrice    float64 `gorm:"column:purchase_price"`
}

// Repository provides the DB operations used by the quota engine.
type Repository interface {
	GetLeadByID(id uint) (*models.Lead, error)
	MarkLeadPurchased(leadID uint) error

	ListActiveSubscriptions(vendorID uint) ([]models.VendorSubscription, error)
	GetPlanByID(id uint) (*models.Plan, error)

	GetPurchase(vendorID, leadID uint) (*models.LeadPurchase, error)
	ListVendorPurchases(vendorID uint) ([]models.LeadPurchase, error)
	CountLeadPurchases(leadID uint) (int64, error)
	InsertPurchase(columns map[string]any) error
	GetPurchaseByID(id uint) (*models.LeadPurchase, error)

	GetQuotaSnapshot(vendorID uint) (*models.VendorQuota, error)
	CreateQuotaSnapshot(q *models.VendorQuota) error
	SaveQuotaSnapshot(q *models.VendorQuota) error

	CallConsumeProcedure(vendorID, leadID uint, mode string, price float64) (*ProcedureOutcome, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a quota repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetLeadByID(id uint) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// MarkLeadPurchased flips an available lead to purchased. The update is
// conditional so terminal states never revert.
func (r *gormRepository) MarkLeadPurchased(leadID uint) error {
	return r.db.Model(&models.Lead{}).
		Where("id = ? AND status = ?", leadID, models.LeadStatusAvailable).
		Update("status", models.LeadStatusPurchased).Error
}

// ListActiveSubscriptions returns the vendor's active subscriptions ordered
// so the current one comes first: end date descending (open-ended rows sort
// last in MySQL DESC order), then start date, then id.
func (r *gormRepository) ListActiveSubscriptions(vendorID uint) ([]models.VendorSubscription, error) {
	var subs []models.VendorSubscription
	err := r.db.
		Where("vendor_id = ? AND status = ?", vendorID, models.SubscriptionStatusActive).
		Order("ends_at DESC").
		Order("starts_at DESC").
		Order("id DESC").
		Limit(subscriptionScanLimit).
		Find(&subs).Error
	return subs, err
}

func (r *gormRepository) GetPlanByID(id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) GetPurchase(vendorID, leadID uint) (*models.LeadPurchase, error) {
	var purchase models.LeadPurchase
	err := r.db.Where("vendor_id = ? AND lead_id = ?", vendorID, leadID).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ListVendorPurchases loads the vendor's full purchase history. No time-range
// filter at the query level: the authoritative timestamp column varies with
// the record shape, so windowing happens in the usage counter.
func (r *gormRepository) ListVendorPurchases(vendorID uint) ([]models.LeadPurchase, error) {
	var purchases []models.LeadPurchase
	err := r.db.Where("vendor_id = ?", vendorID).Find(&purchases).Error
	return purchases, err
}

func (r *gormRepository) CountLeadPurchases(leadID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadPurchase{}).Where("lead_id = ?", leadID).Count(&count).Error
	return count, err
}

// InsertPurchase writes a ledger row from an explicit column map so the
// recorder controls exactly which columns each record shape touches.
func (r *gormRepository) InsertPurchase(columns map[string]any) error {
	return r.db.Table(models.LeadPurchase{}.TableName()).Create(columns).Error
}

func (r *gormRepository) GetPurchaseByID(id uint) (*models.LeadPurchase, error) {
	var purchase models.LeadPurchase
	if err := r.db.First(&purchase, id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *gormRepository) GetQuotaSnapshot(vendorID uint) (*models.VendorQuota, error) {
	var q models.VendorQuota
	err := r.db.Where("vendor_id = ?", vendorID).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *gormRepository) CreateQuotaSnapshot(q *models.VendorQuota) error {
	return r.db.Create(q).Error
}

func (r *gormRepository) SaveQuotaSnapshot(q *models.VendorQuota) error {
	return r.db.Save(q).Error
}

func (r *gormRepository) CallConsumeProcedure(vendorID, leadID uint, mode string, price float64) (*ProcedureOutcome, error) {
	var out ProcedureOutcome
	tx := r.db.Raw("CALL consume_lead_quota(?, ?, ?, ?)", vendorID, leadID, mode, price).Scan(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, errors.New("consume_lead_quota returned no result row")
	}
	return &out, nil
}

// purchaseTimestamp picks the authoritative instant of a ledger row. Legacy
// rows may carry a zero purchased_at; created_at stands in for those.
func purchaseTimestamp(p *models.LeadPurchase) time.Time {
	if !p.PurchasedAt.IsZero() {
		return p.PurchasedAt
	}
	return p.CreatedAt
}
