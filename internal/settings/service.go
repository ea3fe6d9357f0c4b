// Package settings stores admin-editable configuration, currently the
// checkout form schema.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/madhavavarma/storeadminnom/internal/checkoutform"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// CheckoutSchemaKey is the app_settings key under which the schema lives.
const CheckoutSchemaKey = "checkout_schema"

// Service exposes checkout schema reads and writes.
type Service interface {
	GetCheckoutSchema(ctx context.Context) (checkoutform.Schema, error)
	PutCheckoutSchema(ctx context.Context, schema checkoutform.Schema) (checkoutform.Schema, error)
}

type settingsRepository interface {
	Get(ctx context.Context, key string) (*models.AppSettings, error)
	Upsert(ctx context.Context, key string, value types.JSONMap) (*models.AppSettings, error)
}

type service struct {
	repo settingsRepository
}

// NewService constructs a settings service instance.
func NewService(repo settingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// GetCheckoutSchema returns the stored schema, or the built-in default
// when nothing has been saved yet.
func (s *service) GetCheckoutSchema(ctx context.Context) (checkoutform.Schema, error) {
	row, err := s.repo.Get(ctx, CheckoutSchemaKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultCheckoutSchema(), nil
		}
		return checkoutform.Schema{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading checkout schema")
	}
	schema, err := schemaFromValue(row.Value)
	if err != nil {
		return checkoutform.Schema{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding checkout schema")
	}
	return schema, nil
}

// PutCheckoutSchema validates and stores a new schema.
func (s *service) PutCheckoutSchema(ctx context.Context, schema checkoutform.Schema) (checkoutform.Schema, error) {
	if err := checkoutform.Validate(schema); err != nil {
		return checkoutform.Schema{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout schema")
	}
	value, err := schemaToValue(schema)
	if err != nil {
		return checkoutform.Schema{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding checkout schema")
	}
	if _, err := s.repo.Upsert(ctx, CheckoutSchemaKey, value); err != nil {
		return checkoutform.Schema{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing checkout schema")
	}
	return schema, nil
}

// DefaultCheckoutSchema is the schema used before an admin saves one.
func DefaultCheckoutSchema() checkoutform.Schema {
	return checkoutform.Schema{
		Sections: []checkoutform.Section{
			{
				Title: "Contact",
				Fields: []checkoutform.Field{
					{Name: "name", Label: "Name", Type: "text", Required: true, ShowOnOrders: true},
					{Name: "phone", Label: "Phone", Type: "text", Required: true, Pattern: `^\d{10}$`, ErrorMessage: "enter a 10 digit phone number"},
					{Name: "whatsapp", Label: "WhatsApp", Type: "text"},
					{Name: "email", Label: "Email", Type: "text"},
				},
			},
			{
				Title: "Delivery",
				Fields: []checkoutform.Field{
					{Name: "address", Label: "Address", Type: "textarea", Required: true},
					{Name: "landmark", Label: "Landmark", Type: "text"},
				},
			},
		},
	}
}

func schemaToValue(schema checkoutform.Schema) (types.JSONMap, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var value types.JSONMap
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func schemaFromValue(value types.JSONMap) (checkoutform.Schema, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return checkoutform.Schema{}, err
	}
	var schema checkoutform.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return checkoutform.Schema{}, err
	}
	return schema, nil
}
