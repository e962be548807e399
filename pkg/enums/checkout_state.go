package enums

// CheckoutState tracks where a register session's checkout currently sits.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "idle"
	CheckoutStateValidating CheckoutState = "validating"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateSuccess    CheckoutState = "success"
	CheckoutStateFailed     CheckoutState = "failed"
)

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// InFlight reports whether a submission is currently being processed.
func (c CheckoutState) InFlight() bool {
	return c == CheckoutStateValidating || c == CheckoutStateSubmitting
}
