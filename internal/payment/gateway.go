package payment

import "context"

// Metadata keys attached to every checkout session. They are the only
// mechanism for matching a confirmation callback back to the reservation
// that created the session, so they must round-trip unchanged.
const (
	MetaScheduleID    = "scheduleId"
	MetaSlotNumber    = "slotNumber"
	MetaPostID        = "postId"
	MetaUserID        = "userId"
	MetaWeekStartDate = "weekStartDate"
)

type CheckoutRequest struct {
	AmountCents   int64
	ProductName   string
	Description   string
	ImageURL      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

type SessionStatus struct {
	Paid     bool
	Metadata map[string]string
}

// Gateway is the boundary to the external payment processor. Failures are
// wrapped in models.ErrGateway and never retried inside the booking flow;
// the caller decides what to do.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
}
