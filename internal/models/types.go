package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FlexString is a string that also accepts numeric JSON input.
// Clients (and old data files) send invoice numbers both ways.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.New("must be a string or number")
	}
	*s = FlexString(num.String())
	return nil
}

// FlexInt is an integer that accepts a JSON number, a numeric string,
// or an empty string / null (treated as 0). Any other value is an error.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*n = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return errors.New("must be a numeric value")
	}
	*n = FlexInt(v)
	return nil
}

// Int64 returns the plain integer value.
func (n FlexInt) Int64() int64 { return int64(n) }

// FlexDecimal is a decimal that accepts a JSON number, a numeric string,
// or an empty string / null (treated as 0). Any other value is an error.
type FlexDecimal struct {
	decimal.Decimal
}

func (d *FlexDecimal) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		d.Decimal = decimal.Zero
		return nil
	}
	raw = strings.Trim(raw, `"`)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return errors.New("must be a numeric value")
	}
	d.Decimal = v
	return nil
}
