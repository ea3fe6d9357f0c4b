// Package checkoutform defines the admin-configurable checkout form schema
// and binds raw submissions against it.
package checkoutform

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"

	"github.com/madhavavarma/storeadminnom/pkg/enums"
)

// Option is one selectable value of a radio or dropdown field.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Field describes one input of the checkout form. Pattern applies to
// text and textarea fields only and is a user-configured regular
// expression, compiled at validation time.
type Field struct {
	Name         string          `json:"name"`
	Label        string          `json:"label"`
	Type         enums.FieldType `json:"type"`
	Required     bool            `json:"required,omitempty"`
	Disabled     bool            `json:"disabled,omitempty"`
	DefaultValue string          `json:"default_value,omitempty"`
	Pattern      string          `json:"pattern,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Options      []Option        `json:"options,omitempty"`
	ShowOnOrders bool            `json:"show_on_orders,omitempty"`
}

// Section groups fields under a heading.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the full checkout form definition stored in app settings.
type Schema struct {
	Sections []Section `json:"sections"`
}

// Fields flattens the schema's sections in declaration order.
func (s Schema) Fields() []Field {
	var fields []Field
	for _, section := range s.Sections {
		fields = append(fields, section.Fields...)
	}
	return fields
}

// FieldByName returns the named field, or nil when absent.
func (s Schema) FieldByName(name string) *Field {
	for i := range s.Sections {
		for j := range s.Sections[i].Fields {
			if s.Sections[i].Fields[j].Name == name {
				return &s.Sections[i].Fields[j]
			}
		}
	}
	return nil
}

// ShowOnOrdersFields lists fields flagged for the orders list display.
func (s Schema) ShowOnOrdersFields() []Field {
	var fields []Field
	for _, field := range s.Fields() {
		if field.ShowOnOrders {
			fields = append(fields, field)
		}
	}
	return fields
}

// Validate checks the schema for structural problems. All problems are
// reported at once as a combined error.
func Validate(schema Schema) error {
	var errs error
	seen := map[string]bool{}

	for si, section := range schema.Sections {
		if strings.TrimSpace(section.Title) == "" {
			errs = multierr.Append(errs, fmt.Errorf("section %d: title is required", si))
		}
		for _, field := range section.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				errs = multierr.Append(errs, fmt.Errorf("section %q: field name is required", section.Title))
				continue
			}
			if seen[name] {
				errs = multierr.Append(errs, fmt.Errorf("duplicate field name %q", name))
			}
			seen[name] = true

			if !field.Type.IsValid() {
				errs = multierr.Append(errs, fmt.Errorf("field %q: unknown type %q", name, field.Type))
				continue
			}
			if field.Type.HasOptions() && len(field.Options) == 0 {
				errs = multierr.Append(errs, fmt.Errorf("field %q: %s fields need at least one option", name, field.Type))
			}
			if !field.Type.HasOptions() && len(field.Options) > 0 {
				errs = multierr.Append(errs, fmt.Errorf("field %q: %s fields cannot carry options", name, field.Type))
			}
			if field.Pattern != "" {
				if !field.Type.SupportsPattern() {
					errs = multierr.Append(errs, fmt.Errorf("field %q: pattern is only valid on text fields", name))
				} else if _, err := regexp.Compile(field.Pattern); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("field %q: invalid pattern: %w", name, err))
				}
			}
			for _, opt := range field.Options {
				if strings.TrimSpace(opt.Value) == "" {
					errs = multierr.Append(errs, fmt.Errorf("field %q: option values cannot be blank", name))
				}
			}
		}
	}
	return errs
}
