package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog entry with its variant tree.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	BasePrice   decimal.Decimal  `gorm:"column:base_price;type:numeric(12,2);not null"`
	IsPublished bool             `gorm:"column:is_published;not null;default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariant is a named axis of choice on a product (Size, Milk, ...).
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Name      string          `gorm:"column:name;not null"`
	Position  int             `gorm:"column:position;not null;default:0"`
	Options   []VariantOption `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// VariantOption is one selectable value of a variant. At most one option per
// variant carries IsDefault; unpublished or out-of-stock options stay attached
// to historical line items but are not selectable for new ones.
type VariantOption struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID    uuid.UUID       `gorm:"column:variant_id;type:uuid;not null"`
	Name         string          `gorm:"column:name;not null"`
	PriceDelta   decimal.Decimal `gorm:"column:price_delta;type:numeric(12,2);not null;default:0"`
	Position     int             `gorm:"column:position;not null;default:0"`
	IsPublished  bool            `gorm:"column:is_published;not null;default:true"`
	IsOutOfStock bool            `gorm:"column:is_out_of_stock;not null;default:false"`
	IsDefault    bool            `gorm:"column:is_default;not null;default:false"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
