package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)

	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

// ProductInput holds the validated payload to create or replace a product.
type ProductInput struct {
	CategoryID  *uuid.UUID
	Name        string
	Description *string
	BasePrice   decimal.Decimal
	IsPublished bool
	Variants    []VariantInput
}

// VariantInput describes one variant axis with its options.
type VariantInput struct {
	Name    string
	Options []OptionInput
}

// OptionInput describes one selectable option.
type OptionInput struct {
	Name         string
	PriceDelta   decimal.Decimal
	IsPublished  bool
	IsOutOfStock bool
	IsDefault    bool
}

// CategoryInput holds the validated payload to create or update a category.
type CategoryInput struct {
	Name        string
	Description *string
	ImageURL    *string
	IsPublished bool
}

type catalogRepository interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo catalogRepository
}

// NewService constructs a catalog service instance.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product := productFromInput(input)
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return NewProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, notFoundOrInternal(err, "product")
	}

	product := productFromInput(input)
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	for i := range product.Variants {
		product.Variants[i].ProductID = existing.ID
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return NewProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		return notFoundOrInternal(err, "product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, notFoundOrInternal(err, "product")
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = *NewProductDTO(&products[i])
	}
	return dtos, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsPublished: input.IsPublished,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return NewCategoryDTO(created), nil
}

func (s *service) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, notFoundOrInternal(err, "category")
	}
	category.Name = strings.TrimSpace(input.Name)
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.IsPublished = input.IsPublished

	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}
	return NewCategoryDTO(updated), nil
}

func (s *service) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return notFoundOrInternal(err, "category")
	}
	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	dtos := make([]CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = *NewCategoryDTO(&categories[i])
	}
	return dtos, nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	seen := map[string]bool{}
	for _, variant := range input.Variants {
		name := strings.TrimSpace(variant.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant name is required")
		}
		if seen[name] {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate variant %q", name))
		}
		seen[name] = true

		if len(variant.Options) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %q needs at least one option", name))
		}
		defaults := 0
		for _, opt := range variant.Options {
			if strings.TrimSpace(opt.Name) == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %q: option name is required", name))
			}
			if opt.IsDefault {
				defaults++
			}
		}
		if defaults > 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %q: at most one default option", name))
		}
	}
	return nil
}

func productFromInput(input ProductInput) *models.Product {
	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		BasePrice:   input.BasePrice,
		IsPublished: input.IsPublished,
		Variants:    make([]models.ProductVariant, len(input.Variants)),
	}
	for i, variant := range input.Variants {
		v := models.ProductVariant{
			Name:     strings.TrimSpace(variant.Name),
			Position: i,
			Options:  make([]models.VariantOption, len(variant.Options)),
		}
		for j, opt := range variant.Options {
			v.Options[j] = models.VariantOption{
				Name:         strings.TrimSpace(opt.Name),
				PriceDelta:   opt.PriceDelta,
				Position:     j,
				IsPublished:  opt.IsPublished,
				IsOutOfStock: opt.IsOutOfStock,
				IsDefault:    opt.IsDefault,
			}
		}
		product.Variants[i] = v
	}
	return product
}

func notFoundOrInternal(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading "+entity)
}
