package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores an arbitrary JSON object inside a JSONB column. Checkout data
// is intentionally open-ended, so no schema is enforced at the storage layer.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONMap", value)
	}

	var decoded JSONMap
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decoding JSONMap: %w", err)
	}
	*j = decoded
	return nil
}

// Clone returns a shallow copy so callers can mutate without aliasing.
func (j JSONMap) Clone() JSONMap {
	if j == nil {
		return nil
	}
	out := make(JSONMap, len(j))
	for k, v := range j {
		out[k] = v
	}
	return out
}
