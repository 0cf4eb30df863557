package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Text is a nullable text column. In JSON it accepts a string, a number or
// null, and always renders as a string or null.
type Text struct {
	String string
	Valid  bool
}

// NewText returns a valid Text holding s.
func NewText(s string) Text {
	return Text{String: s, Valid: true}
}

// Value implements the driver.Valuer interface
func (t Text) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.String, nil
}

// Scan implements the sql.Scanner interface
func (t *Text) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Text{}
	case []byte:
		*t = NewText(string(v))
	case string:
		*t = NewText(v)
	default:
		return fmt.Errorf("unsupported type %T for text column", value)
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Text{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*t = NewText(str)
		return nil
	}

	// Numbers keep their literal form, so 2.5 stays "2.5"
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*t = NewText(num.String())
		return nil
	}

	return fmt.Errorf("expected string or number, got %s", data)
}
