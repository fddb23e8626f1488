package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage is one entry of a product's gallery. At most one image
// per product should carry IsMain; the data layer stores whatever it
// is given and write-time validation normalizes the set.
type ProductImage struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    string    `gorm:"type:uuid;not null;index" json:"product_id"`
	URL          string    `gorm:"not null" json:"url"`
	IsMain       bool      `gorm:"not null;default:false" json:"is_main"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *ProductImage) TableName() string {
	return "product_images"
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
