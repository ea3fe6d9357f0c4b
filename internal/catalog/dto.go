package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/madhavavarma/storeadminnom/pkg/db/models"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	IsPublished bool            `json:"is_published"`
	Variants    []VariantDTO    `json:"variants"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VariantDTO is one axis of choice on a product.
type VariantDTO struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Position int         `json:"position"`
	Options  []OptionDTO `json:"options"`
}

// OptionDTO is one selectable value of a variant.
type OptionDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	PriceDelta   decimal.Decimal `json:"price_delta"`
	Position     int             `json:"position"`
	IsPublished  bool            `json:"is_published"`
	IsOutOfStock bool            `json:"is_out_of_stock"`
	IsDefault    bool            `json:"is_default"`
}

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		IsPublished: product.IsPublished,
		Variants:    make([]VariantDTO, len(product.Variants)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for i, variant := range product.Variants {
		vdto := VariantDTO{
			ID:       variant.ID,
			Name:     variant.Name,
			Position: variant.Position,
			Options:  make([]OptionDTO, len(variant.Options)),
		}
		for j, opt := range variant.Options {
			vdto.Options[j] = OptionDTO{
				ID:           opt.ID,
				Name:         opt.Name,
				PriceDelta:   opt.PriceDelta,
				Position:     opt.Position,
				IsPublished:  opt.IsPublished,
				IsOutOfStock: opt.IsOutOfStock,
				IsDefault:    opt.IsDefault,
			}
		}
		dto.Variants[i] = vdto
	}
	return dto
}

// NewCategoryDTO builds a DTO from the persisted model.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		IsPublished: category.IsPublished,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
