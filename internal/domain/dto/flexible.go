package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric   = regexp.MustCompile(`[^0-9.\-]`)
	nonDigit     = regexp.MustCompile(`[^0-9]`)
	leadingFloat = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// FlexibleNumber accepts a JSON number or a spoken string such as "50 feet".
// Speech-to-text upstream sends either form.
type FlexibleNumber struct {
	raw    string
	set    bool
	quoted bool
}

// NewFlexibleNumber builds a FlexibleNumber from a float, for tests and internal callers.
func NewFlexibleNumber(v float64) FlexibleNumber {
	return FlexibleNumber{raw: strconv.FormatFloat(v, 'f', -1, 64), set: true}
}

// NewFlexibleNumberString builds a FlexibleNumber from text.
func NewFlexibleNumberString(s string) FlexibleNumber {
	return FlexibleNumber{raw: s, set: true, quoted: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = FlexibleNumber{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FlexibleNumber{raw: s, set: true, quoted: true}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = FlexibleNumber{raw: num.String(), set: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n FlexibleNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if v, ok := n.Float(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(n.raw)
}

// Missing reports whether the value was omitted, null, empty or the number zero.
// The string "0" is present: it was said, it is just not a usable measurement.
func (n FlexibleNumber) Missing() bool {
	if !n.set || strings.TrimSpace(n.raw) == "" {
		return true
	}
	if !n.quoted {
		v, err := strconv.ParseFloat(n.raw, 64)
		return err == nil && v == 0
	}
	return false
}

// Float returns a JSON number as sent and extracts the number from spoken text,
// ignoring units and other words. ok is false when no number can be read.
func (n FlexibleNumber) Float() (float64, bool) {
	if !n.quoted {
		v, err := strconv.ParseFloat(n.raw, 64)
		if err != nil {
			return math.NaN(), false
		}
		return v, true
	}

	cleaned := nonNumeric.ReplaceAllString(n.raw, "")
	m := leadingFloat.FindString(cleaned)
	if m == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN(), false
	}
	return v, true
}

// String returns the value as received.
func (n FlexibleNumber) String() string {
	return n.raw
}

// FlexibleString accepts a JSON string or number, e.g. a ZIP code sent as 43004.
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexibleString(v)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexibleString(num.String())
	return nil
}

// String returns the trimmed text.
func (s FlexibleString) String() string {
	return strings.TrimSpace(string(s))
}

// Empty reports whether nothing was sent.
func (s FlexibleString) Empty() bool {
	return s.String() == ""
}

// Digits returns only the digits of the value.
func (s FlexibleString) Digits() string {
	return nonDigit.ReplaceAllString(string(s), "")
}
