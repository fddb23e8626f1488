package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents an appliance in the catalog.
// It owns a gallery of images and carries a many-to-many tag set
// through the product_tags join table.
type Product struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Description   *string          `json:"description"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"original_price"`
	Category      string           `gorm:"not null;index" json:"category"`
	Stock         int              `gorm:"not null;default:0" json:"stock"`
	Featured      bool             `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	Tags   []Tag          `gorm:"many2many:product_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
