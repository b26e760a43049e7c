package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusBozza      OrderStatus = "bozza"
	OrderStatusConfermato OrderStatus = "confermato"
	OrderStatusEvaso      OrderStatus = "evaso"
	OrderStatusAnnullato  OrderStatus = "annullato"
)

// OrderStatuses lists every status in display order
var OrderStatuses = []OrderStatus{
	OrderStatusBozza,
	OrderStatusConfermato,
	OrderStatusEvaso,
	OrderStatusAnnullato,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusBozza:      "Bozza",
	OrderStatusConfermato: "Confermato",
	OrderStatusEvaso:      "Evaso",
	OrderStatusAnnullato:  "Annullato",
}

// transitions are one-directional; evaso and annullato have none.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusBozza:      {OrderStatusConfermato, OrderStatusAnnullato},
	OrderStatusConfermato: {OrderStatusEvaso, OrderStatusAnnullato},
}

func (s OrderStatus) String() string {
	return string(s)
}

// Label returns the Italian display label
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// IsTerminal reports whether no transition leaves s
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// AllowedTransitions returns the statuses reachable from s in one step
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether s may move to target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == target {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts a raw string into an OrderStatus
func ParseOrderStatus(v string) (OrderStatus, error) {
	s := OrderStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown order status %q", v)
	}
	return s, nil
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = OrderStatusBozza
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
