package checkoutform

import (
	"reflect"
	"testing"

	"github.com/madhavavarma/storeadminnom/pkg/enums"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

func contactSchema() Schema {
	return Schema{
		Sections: []Section{
			{
				Title: "Contact",
				Fields: []Field{
					{Name: "name", Label: "Name", Type: enums.FieldTypeText, Required: true},
					{Name: "phone", Label: "Phone", Type: enums.FieldTypeText, Pattern: `^\d{10}$`, ErrorMessage: "enter a 10 digit number"},
					{Name: "whatsapp", Label: "WhatsApp", Type: enums.FieldTypeText},
					{Name: "email", Label: "Email", Type: enums.FieldTypeText},
				},
			},
			{
				Title: "Delivery",
				Fields: []Field{
					{Name: "slot", Label: "Slot", Type: enums.FieldTypeDropdown, Required: true, Options: []Option{
						{Label: "Morning", Value: "morning"},
						{Label: "Evening", Value: "evening"},
						{Label: "Night", Value: "night", Disabled: true},
					}},
					{Name: "gift", Label: "Gift wrap", Type: enums.FieldTypeCheckbox},
					{Name: "channel", Label: "Channel", Type: enums.FieldTypeText, Disabled: true, DefaultValue: "web"},
				},
			},
		},
	}
}

func TestBindAppliesRawOverExistingOverDefault(t *testing.T) {
	schema := contactSchema()
	existing := types.JSONMap{"name": "Asha", "slot": "morning"}
	raw := types.JSONMap{"name": "Asha R"}

	result := Bind(schema, existing, raw)
	if !result.OK() {
		t.Fatalf("unexpected field errors: %v", result.FieldErrors)
	}
	if result.Values["name"] != "Asha R" {
		t.Fatalf("raw should win, got %v", result.Values["name"])
	}
	if result.Values["slot"] != "morning" {
		t.Fatalf("existing should survive, got %v", result.Values["slot"])
	}
	if result.Values["channel"] != "web" {
		t.Fatalf("default should fill absent field, got %v", result.Values["channel"])
	}
}

func TestBindDisabledFieldIgnoresRaw(t *testing.T) {
	schema := contactSchema()
	existing := types.JSONMap{"channel": "kiosk"}
	raw := types.JSONMap{"channel": "hacked", "name": "Asha", "slot": "morning"}

	result := Bind(schema, existing, raw)
	if result.Values["channel"] != "kiosk" {
		t.Fatalf("disabled field must keep existing value, got %v", result.Values["channel"])
	}
}

func TestBindRequiredAndPattern(t *testing.T) {
	schema := contactSchema()
	result := Bind(schema, nil, types.JSONMap{"phone": "12345"})

	if result.FieldErrors["name"] != "required" {
		t.Fatalf("expected required error for name, got %v", result.FieldErrors)
	}
	if result.FieldErrors["slot"] != "required" {
		t.Fatalf("expected required error for slot, got %v", result.FieldErrors)
	}
	if result.FieldErrors["phone"] != "enter a 10 digit number" {
		t.Fatalf("expected configured message, got %q", result.FieldErrors["phone"])
	}

	// pattern only fires on non-empty values
	result = Bind(schema, nil, types.JSONMap{"name": "Asha", "slot": "morning"})
	if _, ok := result.FieldErrors["phone"]; ok {
		t.Fatal("empty optional field must not fail pattern")
	}
}

func TestBindPatternMatchesTrimmedValue(t *testing.T) {
	schema := contactSchema()
	result := Bind(schema, nil, types.JSONMap{
		"name":  "Asha",
		"slot":  "morning",
		"phone": "  9876543210  ",
	})
	if msg, ok := result.FieldErrors["phone"]; ok {
		t.Fatalf("anchored pattern must run on the trimmed value, got %q", msg)
	}
}

func TestBindCheckboxRequired(t *testing.T) {
	schema := Schema{Sections: []Section{{Title: "Terms", Fields: []Field{
		{Name: "accept", Label: "Accept", Type: enums.FieldTypeCheckbox, Required: true},
	}}}}

	result := Bind(schema, nil, types.JSONMap{"accept": false})
	if result.FieldErrors["accept"] != "required" {
		t.Fatalf("unchecked required checkbox must fail, got %v", result.FieldErrors)
	}

	result = Bind(schema, nil, types.JSONMap{"accept": true})
	if !result.OK() {
		t.Fatalf("checked checkbox should pass, got %v", result.FieldErrors)
	}
}

func TestBindOptionMembership(t *testing.T) {
	schema := contactSchema()
	base := types.JSONMap{"name": "Asha"}

	result := Bind(schema, base, types.JSONMap{"slot": "afternoon"})
	if result.FieldErrors["slot"] != "invalid option" {
		t.Fatalf("expected invalid option, got %v", result.FieldErrors)
	}

	result = Bind(schema, base, types.JSONMap{"slot": "night"})
	if result.FieldErrors["slot"] != "invalid option" {
		t.Fatalf("disabled option must be rejected, got %v", result.FieldErrors)
	}

	result = Bind(schema, base, types.JSONMap{"slot": "evening"})
	if _, ok := result.FieldErrors["slot"]; ok {
		t.Fatalf("valid option rejected: %v", result.FieldErrors)
	}
}

func TestBindUnknownKeysPassThrough(t *testing.T) {
	schema := contactSchema()
	existing := types.JSONMap{"name": "Asha", "slot": "morning", "utm_source": "qr"}
	raw := types.JSONMap{"note": "ring the bell"}

	result := Bind(schema, existing, raw)
	if result.Values["utm_source"] != "qr" {
		t.Fatal("existing unknown key must survive")
	}
	if result.Values["note"] != "ring the bell" {
		t.Fatal("raw unknown key must pass through")
	}
}

func TestBindIdempotent(t *testing.T) {
	schema := contactSchema()
	raw := types.JSONMap{"name": "Asha", "slot": "morning", "phone": "9876543210"}

	first := Bind(schema, nil, raw)
	if !first.OK() {
		t.Fatalf("unexpected errors: %v", first.FieldErrors)
	}
	second := Bind(schema, first.Values, raw)
	if !reflect.DeepEqual(first.Values, second.Values) {
		t.Fatalf("binding is not idempotent:\nfirst:  %v\nsecond: %v", first.Values, second.Values)
	}
}

func TestBindDoesNotMutateExisting(t *testing.T) {
	schema := contactSchema()
	existing := types.JSONMap{"name": "Asha", "slot": "morning"}
	Bind(schema, existing, types.JSONMap{"name": "Changed"})
	if existing["name"] != "Asha" {
		t.Fatal("existing map must not be mutated")
	}
}

func TestMirrorPhoneToWhatsApp(t *testing.T) {
	schema := contactSchema()
	base := types.JSONMap{"name": "Asha", "slot": "morning"}

	t.Run("empty whatsapp follows new phone", func(t *testing.T) {
		existing := base.Clone()
		result := Bind(schema, existing, types.JSONMap{"phone": "9876543210"})
		if result.Values["whatsapp"] != "9876543210" {
			t.Fatalf("expected mirror, got %v", result.Values["whatsapp"])
		}
	})

	t.Run("mirrored whatsapp follows phone change", func(t *testing.T) {
		existing := base.Clone()
		existing["phone"] = "9876543210"
		existing["whatsapp"] = "9876543210"
		result := Bind(schema, existing, types.JSONMap{"phone": "9123456780"})
		if result.Values["whatsapp"] != "9123456780" {
			t.Fatalf("expected mirror to follow, got %v", result.Values["whatsapp"])
		}
	})

	t.Run("diverged whatsapp is preserved", func(t *testing.T) {
		existing := base.Clone()
		existing["phone"] = "9876543210"
		existing["whatsapp"] = "9000000000"
		result := Bind(schema, existing, types.JSONMap{"phone": "9123456780"})
		if result.Values["whatsapp"] != "9000000000" {
			t.Fatalf("diverged whatsapp must not be overwritten, got %v", result.Values["whatsapp"])
		}
	})

	t.Run("unchanged phone leaves whatsapp alone", func(t *testing.T) {
		existing := base.Clone()
		existing["phone"] = "9876543210"
		result := Bind(schema, existing, types.JSONMap{"name": "Asha R"})
		if got := asString(result.Values["whatsapp"]); got != "" {
			t.Fatalf("expected untouched whatsapp, got %q", got)
		}
	})
}
