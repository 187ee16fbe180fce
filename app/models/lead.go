package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSON ist ein Typ für die Speicherung von JSON-Daten in der Datenbank
type JSON json.RawMessage

// Value implementiert das driver.Valuer Interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implementiert das sql.Scanner Interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON("{}")
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid scan source")
	}
	*j = JSON(bytes)
	return nil
}

// MarshalJSON implementiert das json.Marshaler Interface
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implementiert das json.Unmarshaler Interface
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = JSON(data)
	return nil
}

const (
	LeadStatusAvailable = "available"
	LeadStatusPurchased = "purchased"
	LeadStatusExpired   = "expired"
	LeadStatusWithdrawn = "withdrawn"

	// MaxVendorsPerLead is the hard cap of distinct vendors that may hold a
	// purchase against one lead.
	MaxVendorsPerLead = 5
)

// Lead is an acquirable sales opportunity. A nil VendorID marks an open
// marketplace lead; a set VendorID reserves the lead for that vendor.
type Lead struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	VendorID     *uint          `gorm:"index" json:"vendor_id,omitempty"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"type:varchar(100);index" json:"category"`
	Region       string         `gorm:"type:varchar(100);index" json:"region"`
	ContactName  string         `gorm:"type:varchar(150)" json:"contact_name"`
	ContactPhone string         `gorm:"type:varchar(20)" json:"contact_phone"`
	ContactEmail string         `gorm:"type:varchar(200)" json:"contact_email"`
	BudgetMin    float64        `gorm:"type:decimal(12,2);default:0" json:"budget_min"`
	BudgetMax    float64        `gorm:"type:decimal(12,2);default:0" json:"budget_max"`
	Details      JSON           `gorm:"type:json" json:"details,omitempty"`
	Status       string         `gorm:"type:varchar(32);not null;default:'available';index" json:"status"`
	ViewCount    int64          `gorm:"default:0" json:"view_count"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a public UUID if none is set yet.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return nil
}

// IsConsumable reports whether the lead status still admits a purchase.
// Purchased stays consumable because up to MaxVendorsPerLead vendors may
// hold the same lead.
func (l *Lead) IsConsumable() bool {
	return l.Status == "" || l.Status == LeadStatusAvailable || l.Status == LeadStatusPurchased
}
