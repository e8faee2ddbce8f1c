package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/flowstate/tractor-beam/utils"
	"github.com/shopspring/decimal"
)

// JSON-typed columns. MySQL hands json columns back as []byte; each
// type round-trips through encoding/json at the driver boundary.

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(v interface{}) error {
	b, err := scanBytes(v)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

type FloatMap map[string]float64

func (m FloatMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *FloatMap) Scan(v interface{}) error {
	b, err := scanBytes(v)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

type PriceMap map[string]decimal.Decimal

func (m PriceMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *PriceMap) Scan(v interface{}) error {
	b, err := scanBytes(v)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

// JSONColumn stores a pre-marshalled payload verbatim.
type JSONColumn []byte

func (c JSONColumn) Value() (driver.Value, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return []byte(c), nil
}

func (c *JSONColumn) Scan(v interface{}) error {
	b, err := scanBytes(v)
	if err != nil {
		return err
	}
	*c = append((*c)[:0], b...)
	return nil
}

func (c JSONColumn) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

func (c *JSONColumn) UnmarshalJSON(b []byte) error {
	*c = append((*c)[:0], b...)
	return nil
}

// ForecastPoint is one dated value of an external forecast series
// (demand units or a 0-100 quality measure, with optional interval).
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower,omitempty"`
	Upper float64   `json:"upper,omitempty"`
}

// DecodeForecastSeries parses a stored series blob. Callers substitute
// an empty series on error (malformed stored data is logged, not fatal).
func DecodeForecastSeries(raw []byte) ([]ForecastPoint, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var pts []ForecastPoint
	if err := utils.UnmarshalFromJSON(raw, &pts); err != nil {
		return nil, err
	}
	return pts, nil
}

func scanBytes(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, errors.New("json column must be bytes or string")
	}
}
