package domain

// Checkout carries the parameters a client hands to the payment gateway to
// start a charge. OrderID is the booking id, shared with the gateway as the
// correlation token for the asynchronous notification.
type Checkout struct {
	MerchantID string
	OrderID    string
	Amount     string
	Currency   string
	Hash       string
}

// Notification is the gateway's asynchronous server-to-server callback. A
// positive status code confirms the payment (2 means captured), a negative
// one reports failure or cancellation. Signature is the integrity digest
// computed by the gateway over the other fields and the shared secret.
type Notification struct {
	MerchantID string
	OrderID    string
	PaymentID  string
	Amount     string
	Currency   string
	StatusCode int
	Signature  string
}

// PaymentGateway is the boundary to the external payment provider.
type PaymentGateway interface {
	// Checkout builds the signed checkout parameters for a booking.
	Checkout(booking *Booking) (*Checkout, error)

	// VerifyNotification recomputes the integrity signature of a callback
	// and reports whether it matches the supplied one. A mismatch means the
	// notification is forged or corrupted and must be ignored.
	VerifyNotification(n Notification) bool
}
