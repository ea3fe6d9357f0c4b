package checkoutform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/madhavavarma/storeadminnom/pkg/enums"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

const (
	phoneFieldName    = "phone"
	whatsappFieldName = "whatsapp"
)

// BindResult carries the merged checkout data plus per-field problems.
// Callers must not persist Values while FieldErrors is non-empty.
type BindResult struct {
	Values      types.JSONMap
	FieldErrors map[string]string
}

// OK reports whether the binding produced no field errors.
func (r BindResult) OK() bool {
	return len(r.FieldErrors) == 0
}

// Bind merges a raw submission into existing checkout data under the
// schema's rules. For each schema field the value resolves raw, then
// existing, then the field default; disabled fields ignore raw input
// entirely. Keys in existing or raw that the schema does not know pass
// through untouched. Binding the same inputs twice yields the same
// result.
func Bind(schema Schema, existing, raw types.JSONMap) BindResult {
	values := existing.Clone()
	if values == nil {
		values = types.JSONMap{}
	}
	fieldErrors := map[string]string{}

	for _, field := range schema.Fields() {
		prior, hadPrior := values[field.Name]
		value := resolveValue(field, prior, hadPrior, raw)
		values[field.Name] = value

		if msg := validateValue(field, value); msg != "" {
			fieldErrors[field.Name] = msg
		}
	}

	// raw keys outside the schema pass through (open checkout data)
	for key, value := range raw {
		if schema.FieldByName(key) == nil {
			values[key] = value
		}
	}

	mirrorPhoneToWhatsApp(schema, existing, values)

	return BindResult{Values: values, FieldErrors: fieldErrors}
}

func resolveValue(field Field, prior any, hadPrior bool, raw types.JSONMap) any {
	if !field.Disabled {
		if submitted, ok := raw[field.Name]; ok {
			return submitted
		}
	}
	if hadPrior {
		return prior
	}
	if field.Type == enums.FieldTypeCheckbox {
		return field.DefaultValue == "true"
	}
	return field.DefaultValue
}

func validateValue(field Field, value any) string {
	if field.Type == enums.FieldTypeCheckbox {
		if field.Required && !asBool(value) {
			return "required"
		}
		return ""
	}

	text := asString(value)
	trimmed := strings.TrimSpace(text)

	if field.Required && trimmed == "" {
		return "required"
	}

	switch {
	case field.Type.HasOptions():
		if trimmed == "" {
			return ""
		}
		for _, opt := range field.Options {
			if opt.Value == text && !opt.Disabled {
				return ""
			}
		}
		return "invalid option"

	case field.Type.SupportsPattern() && field.Pattern != "" && trimmed != "":
		re, err := regexp.Compile(field.Pattern)
		if err != nil {
			return "invalid format"
		}
		if !re.MatchString(trimmed) {
			if field.ErrorMessage != "" {
				return field.ErrorMessage
			}
			return "invalid format"
		}
	}
	return ""
}

// mirrorPhoneToWhatsApp copies a changed phone number into the whatsapp
// field when whatsapp previously mirrored the phone or was empty. The
// rule is specific to these two fields.
func mirrorPhoneToWhatsApp(schema Schema, existing, values types.JSONMap) {
	if schema.FieldByName(phoneFieldName) == nil || schema.FieldByName(whatsappFieldName) == nil {
		return
	}

	oldPhone := asString(existing[phoneFieldName])
	newPhone := asString(values[phoneFieldName])
	if newPhone == oldPhone {
		return
	}

	oldWhatsApp := asString(existing[whatsappFieldName])
	if oldWhatsApp == "" || oldWhatsApp == oldPhone {
		values[whatsappFieldName] = newPhone
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

func asBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
