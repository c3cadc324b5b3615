package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number or a numeric string, as browsers and form
// posts send either. Present reports whether the key carried a non-null
// value, Numeric whether it parsed as a number (possibly fractional) and OK
// whether that number was whole.
type FlexInt struct {
	Value   int64
	Present bool
	Numeric bool
	OK      bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = ParseFlexInt(b)
	return nil
}

// ParseFlexInt parses raw JSON (or a bare form value) into a FlexInt.
func ParseFlexInt(raw []byte) FlexInt {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return FlexInt{}
	}

	s := string(raw)
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return FlexInt{Present: true}
		}
		s = str
	}
	return FlexIntFromString(s)
}

// FlexIntFromString parses a form or query value. An empty string is absent.
func FlexIntFromString(s string) FlexInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexInt{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FlexInt{Value: n, Present: true, Numeric: true, OK: true}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return FlexInt{Present: true}
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return FlexInt{Present: true, Numeric: true}
	}
	return FlexInt{Value: int64(f), Present: true, Numeric: true, OK: true}
}

// ID returns the value as a positive identifier.
func (f FlexInt) ID() (uint, bool) {
	if !f.OK || f.Value <= 0 {
		return 0, false
	}
	return uint(f.Value), true
}
