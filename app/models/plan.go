package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Plan defines a subscription tier and how many included leads it grants
// per quota window. A limit of 0 means the tier grants no included quota
// at that window.
type Plan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required,min=2,max=50"`
	Name         string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Description  string         `gorm:"type:text" json:"description"`
	DailyLimit   int            `gorm:"not null;default:0" json:"daily_limit" validate:"min=0"`
	WeeklyLimit  int            `gorm:"not null;default:0" json:"weekly_limit" validate:"min=0"`
	YearlyLimit  int            `gorm:"not null;default:0" json:"yearly_limit" validate:"min=0"`
	PriceMonthly float64        `gorm:"type:decimal(10,2);not null;default:0" json:"price_monthly" validate:"min=0"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Plan) Validate() error {
	v := validator.New()
	return v.Struct(p)
}
