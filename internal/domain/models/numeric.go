package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Numeric is a float64 that tolerates the loose typing of stored records:
// JSON numbers, quoted numeric strings, null and outright garbage all
// unmarshal without error. Anything unparseable coerces to 0, matching the
// parse-or-zero policy applied across settings and logs.
type Numeric float64

// Float returns the underlying float64.
func (n Numeric) Float() float64 { return float64(n) }

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = parseOrZero(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = sanitize(f)
	return nil
}

// MarshalJSON implements json.Marshaler. Non-finite values serialize as 0 so
// they never leak into stored records.
func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(sanitize(float64(n))))
}

func parseOrZero(s string) Numeric {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return sanitize(f)
}

func sanitize(f float64) Numeric {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Numeric(f)
}
