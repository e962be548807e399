package enums

import "fmt"

// SaleType selects which business rules apply to a submitted sale.
type SaleType string

const (
	SaleTypeDirect       SaleType = "direct"
	SaleTypeSubscription SaleType = "subscription"
	SaleTypeCredit       SaleType = "credit"
)

var validSaleTypes = []SaleType{
	SaleTypeDirect,
	SaleTypeSubscription,
	SaleTypeCredit,
}

// String implements fmt.Stringer.
func (s SaleType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleType.
func (s SaleType) IsValid() bool {
	for _, candidate := range validSaleTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// RequiresCustomer reports whether this sale type refuses guest checkouts.
func (s SaleType) RequiresCustomer() bool {
	return s == SaleTypeSubscription || s == SaleTypeCredit
}

// RequiresSchedule reports whether this sale type carries calendar fields.
func (s SaleType) RequiresSchedule() bool {
	return s == SaleTypeSubscription
}

// OrderStatus returns the status a newly created order of this type lands in.
// Credit sales are always parked on hold; every other type goes straight to
// processing.
func (s SaleType) OrderStatus() OrderStatus {
	if s == SaleTypeCredit {
		return OrderStatusOnHold
	}
	return OrderStatusProcessing
}

// ParseSaleType converts raw input into a SaleType.
func ParseSaleType(value string) (SaleType, error) {
	for _, candidate := range validSaleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale type %q", value)
}
