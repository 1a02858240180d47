package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean stored as SMALLINT 0/1 and sent on the wire as 0/1.
// It accepts 0/1, true/false and their quoted forms when decoding, so the
// string "0" coming from a form field is false rather than truthy.
type Flag bool

// Int returns 1 for true and 0 for false.
func (f Flag) Int() int {
	if f {
		return 1
	}
	return 0
}

// Label renders the flag the way the listing shows it.
func (f Flag) Label() string {
	if f {
		return "Sí"
	}
	return "No"
}

// ParseFlag converts loosely typed input into a Flag.
func ParseFlag(raw string) (Flag, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "0", "false", "no", "off":
		return false, nil
	case "1", "true", "yes", "on":
		return true, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, fmt.Errorf("invalid flag value %q", raw)
	}
	return Flag(n != 0), nil
}

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(f.Int())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := ParseFlag(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Value implements driver.Valuer.
func (f Flag) Value() (driver.Value, error) {
	return int64(f.Int()), nil
}

// Scan implements sql.Scanner.
func (f *Flag) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case int64:
		*f = v != 0
	case bool:
		*f = Flag(v)
	case []byte:
		parsed, err := ParseFlag(string(v))
		if err != nil {
			return err
		}
		*f = parsed
	case string:
		parsed, err := ParseFlag(v)
		if err != nil {
			return err
		}
		*f = parsed
	default:
		return fmt.Errorf("cannot scan %T into Flag", src)
	}
	return nil
}
