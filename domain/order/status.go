package order

// Status is the order lifecycle state.
//
// Transitions:
//
//	PENDING → CONFIRMED (automatic, on successful payment during creation)
//	CONFIRMED → CANCELLED (explicit user cancellation)
//
// A transition to the current state is an accepted no-op. Everything else
// is rejected; CANCELLED and CONFIRMED are never reactivated.
type Status string

const (
	// StatusPending order created, payment not yet completed
	StatusPending Status = "PENDING"
	// StatusConfirmed payment completed
	StatusConfirmed Status = "CONFIRMED"
	// StatusCancelled cancelled by the user
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus validates a status token.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the transition table allows moving from
// the current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusPending:
		return target == StatusConfirmed
	case StatusConfirmed:
		return target == StatusCancelled
	default:
		return false
	}
}

// PaymentMethod is how an order is paid. It is mutable only while the
// order is PENDING; once confirmed it never changes.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// ParsePaymentMethod validates a payment method token.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer:
		return PaymentMethod(s), true
	}
	return "", false
}
