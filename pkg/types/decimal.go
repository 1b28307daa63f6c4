package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Decimal is a string-backed decimal amount. The storefront API hands prices
// over as strings ("450.0") while browser clients occasionally post them as
// JSON numbers; Decimal accepts both and keeps the original text so amounts
// are passed through verbatim, never re-quantized.
type Decimal string

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decimal: %w", err)
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

func (d Decimal) String() string {
	return string(d)
}

// Float64 parses the amount for ordering and range comparisons.
func (d Decimal) Float64() (float64, error) {
	if d == "" {
		return 0, nil
	}
	return strconv.ParseFloat(string(d), 64)
}

func (d Decimal) IsZero() bool {
	return d == ""
}
