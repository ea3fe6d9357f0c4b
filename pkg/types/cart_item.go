package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChosenOption is the snapshot of a variant option attached to a line item.
// Price deltas are copied at selection time so later catalog edits do not
// rewrite historical orders.
type ChosenOption struct {
	OptionID   uuid.UUID       `json:"option_id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// CartItem is one order line: a product plus one chosen option per variant.
type CartItem struct {
	ProductID       uuid.UUID               `json:"product_id"`
	ProductName     string                  `json:"product_name"`
	BasePrice       decimal.Decimal         `json:"base_price"`
	SelectedOptions map[string]ChosenOption `json:"selected_options"`
	Quantity        int                     `json:"quantity"`
	TotalPrice      decimal.Decimal         `json:"total_price"`
}

// CartItems serializes as a JSONB array on the orders row.
type CartItems []CartItem

// TotalQuantity sums the line quantities.
func (c CartItems) TotalQuantity() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums the cached line totals.
func (c CartItems) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.TotalPrice)
	}
	return total
}
