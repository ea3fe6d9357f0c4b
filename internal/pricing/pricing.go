// Package pricing computes cart line totals from a product's base price
// and the chosen variant options.
package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// Selection maps variant name to the chosen option for that variant.
type Selection map[string]types.ChosenOption

// Quote prices a line: (base price + sum of option deltas) * quantity.
// Negative deltas (discount options) are allowed and flow straight into
// the total.
func Quote(basePrice decimal.Decimal, selection Selection, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	unit := basePrice
	for _, opt := range selection {
		unit = unit.Add(opt.PriceDelta)
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// QuoteItem recomputes a cart item's total price in place and returns it.
func QuoteItem(item *types.CartItem) error {
	total, err := Quote(item.BasePrice, item.SelectedOptions, item.Quantity)
	if err != nil {
		return err
	}
	item.TotalPrice = total
	return nil
}

// ValidateSelection checks a proposed selection against the product's
// variant tree. The selection may be partial or empty: a variant with
// no entry stays unset and contributes nothing to the price. Every
// option that was chosen must belong to its variant and be currently
// sellable. Historical selections on existing orders are never
// re-validated; this applies to new or edited lines only.
func ValidateSelection(product *models.Product, selection Selection) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if !product.IsPublished {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %q is not published", product.Name))
	}

	for name, chosen := range selection {
		variant := findVariant(product, name)
		if variant == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown variant %q", name))
		}
		opt := findOption(*variant, chosen.OptionID)
		if opt == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option %q is not part of variant %q", chosen.Name, variant.Name))
		}
		if !opt.IsPublished {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option %q of variant %q is not published", opt.Name, variant.Name))
		}
		if opt.IsOutOfStock {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option %q of variant %q is out of stock", opt.Name, variant.Name))
		}
		if !chosen.PriceDelta.Equal(opt.PriceDelta) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("stale price for option %q of variant %q", opt.Name, variant.Name))
		}
	}
	return nil
}

// DefaultSelection builds the pre-selection for a new line: only options
// explicitly flagged as default are picked, and a default that is
// unpublished or out of stock is skipped. Variants without a flagged
// default stay unset.
func DefaultSelection(product *models.Product) Selection {
	selection := make(Selection, len(product.Variants))
	for _, variant := range product.Variants {
		for i := range variant.Options {
			opt := &variant.Options[i]
			if !opt.IsDefault || !opt.IsPublished || opt.IsOutOfStock {
				continue
			}
			selection[variant.Name] = types.ChosenOption{
				OptionID:   opt.ID,
				Name:       opt.Name,
				PriceDelta: opt.PriceDelta,
			}
			break
		}
	}
	return selection
}

// BuildItem assembles a priced cart item from a product, a validated
// selection, and a quantity. Variants the caller left unset pick up
// their default-flagged option; everything else stays unset.
func BuildItem(product *models.Product, selection Selection, quantity int) (types.CartItem, error) {
	if err := ValidateSelection(product, selection); err != nil {
		return types.CartItem{}, err
	}

	merged := DefaultSelection(product)
	for name, chosen := range selection {
		merged[name] = chosen
	}

	item := types.CartItem{
		ProductID:       product.ID,
		ProductName:     product.Name,
		BasePrice:       product.BasePrice,
		SelectedOptions: merged,
		Quantity:        quantity,
	}
	if err := QuoteItem(&item); err != nil {
		return types.CartItem{}, err
	}
	return item, nil
}

func findVariant(product *models.Product, name string) *models.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].Name == name {
			return &product.Variants[i]
		}
	}
	return nil
}

func findOption(variant models.ProductVariant, id uuid.UUID) *models.VariantOption {
	for i := range variant.Options {
		if variant.Options[i].ID == id {
			return &variant.Options[i]
		}
	}
	return nil
}
