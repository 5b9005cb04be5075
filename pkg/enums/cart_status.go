package enums

import "fmt"

// CartStatus tracks where a cart sits in its lifecycle. Active carts are the
// only mutable ones; confirmed and rejected are terminal.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConfirmed CartStatus = "confirmed"
	CartStatusRejected  CartStatus = "rejected"
)

var validCartStatuses = []CartStatus{
	CartStatusActive,
	CartStatusConfirmed,
	CartStatusRejected,
}

// String implements fmt.Stringer.
func (c CartStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStatus.
func (c CartStatus) IsValid() bool {
	for _, candidate := range validCartStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (c CartStatus) IsTerminal() bool {
	return c == CartStatusConfirmed || c == CartStatusRejected
}

// ParseCartStatus converts raw input into a CartStatus.
func ParseCartStatus(value string) (CartStatus, error) {
	for _, candidate := range validCartStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart status %q", value)
}
