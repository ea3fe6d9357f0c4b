package enums

import "fmt"

// FieldType identifies the kind of a configurable checkout form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeCheckbox FieldType = "checkbox"
)

var validFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeRadio,
	FieldTypeDropdown,
	FieldTypeCheckbox,
}

// String implements fmt.Stringer.
func (f FieldType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FieldType.
func (f FieldType) IsValid() bool {
	for _, candidate := range validFieldTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// HasOptions reports whether the field type carries an option list.
func (f FieldType) HasOptions() bool {
	return f == FieldTypeRadio || f == FieldTypeDropdown
}

// SupportsPattern reports whether the field type accepts a validation regex.
func (f FieldType) SupportsPattern() bool {
	return f == FieldTypeText || f == FieldTypeTextarea
}

// ParseFieldType converts raw input into a FieldType.
func ParseFieldType(value string) (FieldType, error) {
	for _, candidate := range validFieldTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid field type %q", value)
}
