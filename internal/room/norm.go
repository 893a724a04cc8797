package room

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NormalizeID canonicalizes a choice or round id for comparison: trim
// surrounding whitespace, uppercase. Submitted ids and authored ids are
// both run through this, so "b", "B", and " B " all match a choice whose
// id is "B". This tolerance is a compatibility contract, not incidental.
func NormalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Truthy is a correctness flag coerced through a permissive rule at JSON
// intake: boolean true, the number 1, and the strings "1" and "true"
// (case-insensitive, trimmed) all count as true. Anything else, including
// values that fail to parse, counts as false. It marshals back as a plain
// boolean.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = false
		return nil
	}

	switch data[0] {
	case 't':
		*t = string(data) == "true"
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = false
			return nil
		}
		s = strings.ToLower(strings.TrimSpace(s))
		*t = s == "1" || s == "true"
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		*t = err == nil && f == 1
	}
	return nil
}

func (t Truthy) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(t))
}

// FlexID is a string id that also accepts JSON numbers at intake, since
// some clients send numeric choice ids. A number is kept as its literal
// text; null decodes to the empty string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	*f = FlexID(data)
	return nil
}
