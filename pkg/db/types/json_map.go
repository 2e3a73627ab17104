package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores an arbitrary JSON object in a jsonb column.
type JSONMap map[string]any

// Value serializes the map for storage. Nil maps persist as an empty object.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal json map: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the column value back into the map.
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json map source type %T", value)
	}

	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal json map: %w", err)
	}
	*m = out
	return nil
}
