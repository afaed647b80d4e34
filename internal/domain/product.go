package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalog record. The cart and saved lists refer to products by
// ID and carry a snapshot of the display fields; the catalog owns the record.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SKU         string           `gorm:"uniqueIndex;not null;column:sku" json:"sku"`
	Name        string           `gorm:"not null" json:"name"`
	Description string           `json:"description"`
	Category    string           `gorm:"index" json:"category"`
	UnitPrice   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price,omitempty"`
	ImageURL    string           `gorm:"column:image_url" json:"image_url"`
	Attributes  datatypes.JSON   `json:"attributes,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }

// ProductSnapshot is the subset of catalog fields the cart keeps per line
// item, captured at add time.
type ProductSnapshot struct {
	SKU       string           `json:"sku"`
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	ImageURL  string           `json:"image_url,omitempty"`
}

func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		SKU:       p.SKU,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		ImageURL:  p.ImageURL,
	}
}
