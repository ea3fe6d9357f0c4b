package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/madhavavarma/storeadminnom/internal/repo"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	"github.com/madhavavarma/storeadminnom/pkg/enums"
	"github.com/madhavavarma/storeadminnom/pkg/pagination"
)

// ListFilter narrows the order listing.
type ListFilter struct {
	Status     *enums.OrderStatus
	CustomerID string
}

// Repository wires together order persistence helpers.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a single order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a page of orders, newest first, using cursor pagination
// keyed on (created_at, id).
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error) {
	query := r.DB(ctx).Model(&models.Order{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var orders []models.Order
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll loads every order. The dashboard aggregates in memory and
// needs the whole set.
func (r *Repository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB(ctx).Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts a new order row.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Save overwrites the order row. Last write wins.
func (r *Repository) Save(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes the order row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Order{}, "id = ?", id).Error
}
