package repository

import (
	"time"

	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByEmail(email string) (*models.Vendor, error)
	GetByAPIKeyHash(hash string) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Vendor, error)
	Count() (int64, error)
	Search(query string) ([]models.Vendor, error)
}

// LeadRepository defines the interface for lead-related database operations
type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByID(id uint) (*models.Lead, error)
	GetByUUID(uuid string) (*models.Lead, error)
	GetByVendorID(vendorID uint, offset, limit int) ([]models.Lead, error)
	Update(lead *models.Lead) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Lead, error)
	ListAvailable(category, region string, offset, limit int) ([]models.Lead, error)
	Count() (int64, error)
	CountAvailable() (int64, error)
	CountPurchasedSince(since time.Time) (int64, error)
	Search(query string) ([]models.Lead, error)
}

// PlanRepository defines the interface for plan-related database operations
type PlanRepository interface {
	Create(plan *models.Plan) error
	GetByID(id uint) (*models.Plan, error)
	GetByCode(code string) (*models.Plan, error)
	GetActive() ([]models.Plan, error)
	List(offset, limit int) ([]models.Plan, error)
	Update(plan *models.Plan) error
	Delete(id uint) error
}

// SubscriptionRepository defines the interface for vendor subscription operations
type SubscriptionRepository interface {
	Create(sub *models.VendorSubscription) error
	GetByID(id uint) (*models.VendorSubscription, error)
	GetCurrentByVendorID(vendorID uint, now time.Time) (*models.VendorSubscription, error)
	ListByVendorID(vendorID uint) ([]models.VendorSubscription, error)
	Update(sub *models.VendorSubscription) error
}

// PurchaseRepository defines the interface for lead purchase read operations.
// Writes go through the quota engine, which owns the insert shapes.
type PurchaseRepository interface {
	GetByID(id uint) (*models.LeadPurchase, error)
	GetByVendorAndLead(vendorID, leadID uint) (*models.LeadPurchase, error)
	ListByVendorID(vendorID uint, offset, limit int) ([]models.LeadPurchase, error)
	CountByVendorID(vendorID uint) (int64, error)
	CountByLeadID(leadID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Vendor       VendorRepository
	Lead         LeadRepository
	Plan         PlanRepository
	Subscription SubscriptionRepository
	Purchase     PurchaseRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:       NewVendorRepository(db),
		Lead:         NewLeadRepository(db),
		Plan:         NewPlanRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Purchase:     NewPurchaseRepository(db),
	}
}
