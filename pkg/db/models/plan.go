package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a purchasable recharge offering. Validity and Data are kept
// as the loosely structured display strings the catalog is authored
// with ("28 days", "2GB/day"); the recommendation scorer parses their
// leading magnitudes best-effort.
type Plan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Price       int       `gorm:"column:price;not null"`
	Validity    string    `gorm:"column:validity;not null"`
	Data        string    `gorm:"column:data;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
