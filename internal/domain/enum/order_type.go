package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderType tags a category as display units or other products. It decides
// whether an order carries display units and therefore a sale mode.
type OrderType string

const (
	OrderTypeEspositori    OrderType = "espositori"
	OrderTypeNonEspositori OrderType = "non_espositori"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	return t == OrderTypeEspositori || t == OrderTypeNonEspositori
}

func (t OrderType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = OrderTypeNonEspositori
	case string:
		*t = OrderType(v)
	case []byte:
		*t = OrderType(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderType", value)
	}
	return nil
}

// SaleMode is how display units are sold
type SaleMode string

const (
	SaleModeDiretto SaleMode = "diretto"
	SaleModeLeasing SaleMode = "leasing"
)

func (m SaleMode) String() string {
	return string(m)
}

func (m SaleMode) IsValid() bool {
	return m == SaleModeDiretto || m == SaleModeLeasing
}

// Label returns the Italian display label
func (m SaleMode) Label() string {
	if m == SaleModeLeasing {
		return "Leasing"
	}
	return "Diretto"
}

func (m SaleMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *SaleMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = ""
	case string:
		*m = SaleMode(v)
	case []byte:
		*m = SaleMode(v)
	default:
		return fmt.Errorf("cannot scan %T into SaleMode", value)
	}
	return nil
}
