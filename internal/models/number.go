package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LooseInt decodes from a JSON number or a numeric string. Form-backed
// clients send ids and ages as strings.
type LooseInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*n = LooseInt(v)
	return nil
}

// Int64 returns the value as int64.
func (n LooseInt) Int64() int64 { return int64(n) }
