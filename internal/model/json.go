package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is an open-ended JSON document stored in a jsonb column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// StringList is a JSON array of strings stored in a jsonb column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// DayPlans is the ordered day-by-day sequence stored in a jsonb column.
type DayPlans []DayPlan

// Value implements driver.Valuer.
func (d DayPlans) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *DayPlans) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
