package domain

import (
	"encoding/json"
	"fmt"
)

// FlexibleID accepts both JSON strings and JSON numbers. Numbers keep their
// literal text, so 1234567890123 stays "1234567890123".
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())

	return nil
}

func (id FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id FlexibleID) String() string {
	return string(id)
}
