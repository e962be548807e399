package types

// PaymentMethod is the operator-selected payment gateway. Only the id and
// title are recorded on the order; no payment is executed here.
type PaymentMethod struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CustomerRef identifies the customer attached to a sale. ID 0 denotes a
// guest, which is only permitted for direct sales.
type CustomerRef struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// IsGuest reports whether the reference denotes the guest customer.
func (c CustomerRef) IsGuest() bool {
	return c.ID == 0
}

// DefaultEventColor is the calendar color applied when none is chosen.
const DefaultEventColor = "#3a87ad"

// Schedule carries the calendar fields attached to a subscription sale.
// StartDate is a YYYY-MM-DD string; Color is a #rrggbb hex value.
type Schedule struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	Color     string `json:"color"`
}

// IsZero reports whether no schedule fields have been set.
func (s Schedule) IsZero() bool {
	return s.Title == "" && s.StartDate == "" && s.Color == ""
}
