package repository

import (
	"strings"
	"time"

	"github.com/leadkart/leadkart/app/models"
	"gorm.io/gorm"
)

// leadRepository implements the LeadRepository interface
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// Create creates a new lead in the database
func (r *leadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// GetByID retrieves a lead by its ID
func (r *leadRepository) GetByID(id uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByUUID retrieves a lead by its public UUID
func (r *leadRepository) GetByUUID(uuid string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Where("uuid = ?", uuid).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByVendorID retrieves leads reserved for a specific vendor
func (r *leadRepository) GetByVendorID(vendorID uint, offset, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Where("vendor_id = ?", vendorID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, err
}

// Update updates an existing lead in the database
func (r *leadRepository) Update(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

// Delete soft deletes a lead by its ID
func (r *leadRepository) Delete(id uint) error {
	return r.db.Delete(&models.Lead{}, id).Error
}

// List retrieves a paginated list of leads
func (r *leadRepository) List(offset, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, err
}

// ListAvailable retrieves open marketplace leads, optionally filtered by
// category and region
func (r *leadRepository) ListAvailable(category, region string, offset, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	query := r.db.Where("status = ? AND vendor_id IS NULL", models.LeadStatusAvailable)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if region != "" {
		query = query.Where("region = ?", region)
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, err
}

// Count returns the total number of leads
func (r *leadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}

// CountAvailable returns the number of open marketplace leads
func (r *leadRepository) CountAvailable() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Where("status = ?", models.LeadStatusAvailable).Count(&count).Error
	return count, err
}

// CountPurchasedSince returns the number of purchases recorded since the given time
func (r *leadRepository) CountPurchasedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadPurchase{}).Where("purchased_at >= ?", since).Count(&count).Error
	return count, err
}

// Search searches for leads by title, category or region
func (r *leadRepository) Search(query string) ([]models.Lead, error) {
	var leads []models.Lead
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("title LIKE ? OR category LIKE ? OR region LIKE ?", searchPattern, searchPattern, searchPattern).Find(&leads).Error
	return leads, err
}
