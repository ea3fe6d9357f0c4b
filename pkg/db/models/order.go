package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/madhavavarma/storeadminnom/pkg/enums"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// Order is the persisted checkout outcome the dashboard operates on.
// Totals are caches over CartItems and are recomputed on every line mutation.
// Writes are last-write-wins: each order is edited by one admin session at a
// time, so no optimistic locking column exists.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    string            `gorm:"column:customer_id;not null;index"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'Pending'"`
	CartItems     types.CartItems   `gorm:"column:cart_items;type:jsonb;serializer:json"`
	TotalQuantity int               `gorm:"column:total_quantity;not null;default:0"`
	TotalPrice    decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null;default:0"`
	CheckoutData  types.JSONMap     `gorm:"column:checkout_data;type:jsonb;serializer:json"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
