package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a numeric form field that accepts a JSON number or a numeric
// string. null, "" and an absent field leave it unset.
type Number struct {
	raw   string
	Valid bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = Number{}
			return nil
		}
		if _, err := decimal.NewFromString(s); err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = Number{raw: s, Valid: true}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = Number{raw: num.String(), Valid: true}
	return nil
}

// Decimal returns the value as a nullable decimal.
func (n Number) Decimal() decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Int returns the value truncated to an integer, or nil when unset.
func (n Number) Int() *int {
	if !n.Valid {
		return nil
	}
	if i, err := strconv.Atoi(n.raw); err == nil {
		return &i
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return nil
	}
	i := int(d.IntPart())
	return &i
}

// NewNumber builds a set Number, mostly for tests.
func NewNumber(v string) Number {
	return Number{raw: v, Valid: true}
}
