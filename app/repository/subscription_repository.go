package repository

import (
	"time"

	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new vendor subscription in the database
func (r *subscriptionRepository) Create(sub *models.VendorSubscription) error {
	return r.db.Create(sub).Error
}

// GetByID retrieves a subscription by its ID
func (r *subscriptionRepository) GetByID(id uint) (*models.VendorSubscription, error) {
	var sub models.VendorSubscription
	err := r.db.Preload("Plan").First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetCurrentByVendorID retrieves the newest subscription that is flagged
// active and has not passed its end date. Open-ended rows sort first.
func (r *subscriptionRepository) GetCurrentByVendorID(vendorID uint, now time.Time) (*models.VendorSubscription, error) {
	var sub models.VendorSubscription
	err := r.db.Preload("Plan").
		Where("vendor_id = ? AND status = ? AND (ends_at IS NULL OR ends_at > ?)", vendorID, models.SubscriptionStatusActive, now).
		Order("ends_at DESC, starts_at DESC, id DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByVendorID retrieves all subscriptions of a vendor, newest first
func (r *subscriptionRepository) ListByVendorID(vendorID uint) ([]models.VendorSubscription, error) {
	var subs []models.VendorSubscription
	err := r.db.Preload("Plan").Where("vendor_id = ?", vendorID).Order("starts_at DESC").Find(&subs).Error
	return subs, err
}

// Update updates an existing subscription in the database
func (r *subscriptionRepository) Update(sub *models.VendorSubscription) error {
	return r.db.Save(sub).Error
}
