package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Status        string          `json:"status"`
	CartItems     types.CartItems `json:"cart_items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CheckoutData  types.JSONMap   `json:"checkout_data"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderListResult is one page of orders plus the cursor for the next page.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO builds a DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Status:        string(order.Status),
		CartItems:     order.CartItems,
		TotalQuantity: order.TotalQuantity,
		TotalPrice:    order.TotalPrice,
		CheckoutData:  order.CheckoutData,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
