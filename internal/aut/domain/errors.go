package domain

// ValidationError is a rejected edit request. The message is human-readable
// and shown to the user next to the form; callers distinguish the rejection
// itself (errors.As) rather than the individual reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// The enumerated rejection reasons, checked in this order.
var (
	ErrNameRequired        = &ValidationError{Reason: "Name must be present."}
	ErrDisplayNameRequired = &ValidationError{Reason: "Display name must be present."}
	ErrPasswordRequired    = &ValidationError{Reason: "Password must be supplied."}
	ErrPasswordMismatch    = &ValidationError{Reason: "Passwords do not match."}
)
