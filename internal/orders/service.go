// Package orders implements the order lifecycle: listing, status
// transitions, checkout data edits, and cart line edits.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/madhavavarma/storeadminnom/internal/checkoutform"
	"github.com/madhavavarma/storeadminnom/internal/pricing"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	"github.com/madhavavarma/storeadminnom/pkg/enums"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/pagination"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// Service defines order lifecycle operations.
type Service interface {
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*OrderListResult, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Advance(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	UpdateCheckoutData(ctx context.Context, orderID uuid.UUID, raw types.JSONMap) (*OrderDTO, map[string]string, error)
	UpdateItems(ctx context.Context, orderID uuid.UUID, lines []LineInput) (*OrderDTO, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

// CreateOrderInput carries a new order submission.
type CreateOrderInput struct {
	CustomerID   string
	Lines        []LineInput
	CheckoutData types.JSONMap
}

// LineInput is one requested cart line.
type LineInput struct {
	ProductID uuid.UUID
	Selection pricing.Selection
	Quantity  int
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type schemaLoader interface {
	GetCheckoutSchema(ctx context.Context) (checkoutform.Schema, error)
}

// changeSignaler broadcasts that the order set changed so listeners can
// recompute derived views.
type changeSignaler interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// OrdersChangedChannel is the pub/sub channel notified after every write.
const OrdersChangedChannel = "orders.changed"

type service struct {
	repo     orderRepository
	products productLoader
	schemas  schemaLoader
	signaler changeSignaler
	logg     *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo orderRepository, products productLoader, schemas schemaLoader, signaler changeSignaler, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if schemas == nil {
		return nil, fmt.Errorf("schema loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		products: products,
		schemas:  schemas,
		signaler: signaler,
		logg:     logg,
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*OrderListResult, error) {
	rows, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	result := &OrderListResult{}
	page, hasMore := pagination.TrimPage(rows, params.Limit)
	if hasMore {
		last := page[len(page)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	result.Orders = make([]OrderDTO, len(page))
	for i := range page {
		result.Orders[i] = *NewOrderDTO(&page[i])
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return NewOrderDTO(order), nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if input.CustomerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line")
	}

	items, err := s.buildItems(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	schema, err := s.schemas.GetCheckoutSchema(ctx)
	if err != nil {
		return nil, err
	}
	bound := checkoutform.Bind(schema, nil, input.CheckoutData)
	if !bound.OK() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout data").
			WithDetails(fieldErrorDetails(bound.FieldErrors))
	}

	order := &models.Order{
		CustomerID:    input.CustomerID,
		Status:        enums.OrderStatusPending,
		CartItems:     items,
		TotalQuantity: items.TotalQuantity(),
		TotalPrice:    items.TotalPrice(),
		CheckoutData:  bound.Values,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	s.notifyChanged(ctx, created.ID, "created")
	return NewOrderDTO(created), nil
}

// Advance moves the order one step along the fulfillment flow. Orders
// that are Delivered, Cancelled, or Returned have no next step and the
// call fails without touching the row.
func (s *service) Advance(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, ok := order.Status.Next()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot advance", order.Status))
	}

	order.Status = next
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "advancing order")
	}

	s.notifyChanged(ctx, saved.ID, "advanced")
	return NewOrderDTO(saved), nil
}

// SetStatus writes any valid status directly, including jumps backwards
// and edits to terminal orders.
func (s *service) SetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = status
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "setting order status")
	}

	s.notifyChanged(ctx, saved.ID, "status_set")
	return NewOrderDTO(saved), nil
}

// UpdateCheckoutData rebinds the order's checkout data against the
// current schema. Field errors block persistence and are returned to
// the caller alongside no DTO.
func (s *service) UpdateCheckoutData(ctx context.Context, orderID uuid.UUID, raw types.JSONMap) (*OrderDTO, map[string]string, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	schema, err := s.schemas.GetCheckoutSchema(ctx)
	if err != nil {
		return nil, nil, err
	}

	bound := checkoutform.Bind(schema, order.CheckoutData, raw)
	if !bound.OK() {
		return nil, bound.FieldErrors, nil
	}

	order.CheckoutData = bound.Values
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating checkout data")
	}

	s.notifyChanged(ctx, saved.ID, "checkout_data_updated")
	return NewOrderDTO(saved), nil, nil
}

// UpdateItems replaces the order's cart lines and recomputes the cached
// totals. Every line is re-validated and re-priced against the current
// catalog.
func (s *service) UpdateItems(ctx context.Context, orderID uuid.UUID, lines []LineInput) (*OrderDTO, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line")
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, lines)
	if err != nil {
		return nil, err
	}

	order.CartItems = items
	order.TotalQuantity = items.TotalQuantity()
	order.TotalPrice = items.TotalPrice()

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order items")
	}

	s.notifyChanged(ctx, saved.ID, "items_updated")
	return NewOrderDTO(saved), nil
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.findOrder(ctx, orderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting order")
	}
	s.notifyChanged(ctx, orderID, "deleted")
	return nil
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

func (s *service) buildItems(ctx context.Context, lines []LineInput) (types.CartItems, error) {
	items := make(types.CartItems, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.FindProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("product %s not found", line.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
		}
		item, err := pricing.BuildItem(product, line.Selection, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// notifyChanged fires the recompute signal. Failures are logged, never
// surfaced: the write already succeeded and the refresher catches up on
// its next interval.
func (s *service) notifyChanged(ctx context.Context, orderID uuid.UUID, action string) {
	if s.signaler == nil {
		return
	}
	payload := fmt.Sprintf("%s:%s:%d", action, orderID, time.Now().UnixNano())
	if err := s.signaler.Publish(ctx, OrdersChangedChannel, payload); err != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, orderID.String()), "publishing orders.changed failed: "+err.Error())
	}
}

func fieldErrorDetails(fieldErrors map[string]string) map[string]any {
	details := make(map[string]any, len(fieldErrors))
	for field, msg := range fieldErrors {
		details[field] = msg
	}
	return details
}
