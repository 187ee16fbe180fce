package repository

import (
	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// purchaseRepository implements the PurchaseRepository interface
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// GetByID retrieves a purchase by its ID
func (r *purchaseRepository) GetByID(id uint) (*models.LeadPurchase, error) {
	var purchase models.LeadPurchase
	err := r.db.First(&purchase, id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// GetByVendorAndLead retrieves the purchase a vendor holds on a lead
func (r *purchaseRepository) GetByVendorAndLead(vendorID, leadID uint) (*models.LeadPurchase, error) {
	var purchase models.LeadPurchase
	err := r.db.Where("vendor_id = ? AND lead_id = ?", vendorID, leadID).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ListByVendorID retrieves a vendor's purchases, newest first
func (r *purchaseRepository) ListByVendorID(vendorID uint, offset, limit int) ([]models.LeadPurchase, error) {
	var purchases []models.LeadPurchase
	err := r.db.Where("vendor_id = ?", vendorID).
		Order("purchased_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&purchases).Error
	return purchases, err
}

// CountByVendorID returns the number of purchases a vendor holds
func (r *purchaseRepository) CountByVendorID(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadPurchase{}).Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}

// CountByLeadID returns the number of distinct vendor purchases on a lead
func (r *purchaseRepository) CountByLeadID(leadID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadPurchase{}).Where("lead_id = ?", leadID).Count(&count).Error
	return count, err
}
