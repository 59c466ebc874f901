package gateway

import (
	"context"
	"errors"
)

// Metadata keys attached to every checkout session. The webhook reconciler
// locates the booking using only these keys, so CreateCheckoutSession must
// set all of them.
const (
	MetaBookingID   = "booking_id"
	MetaBookingType = "booking_type"
	MetaSubjectID   = "subject_id"
	MetaUserID      = "user_id"
)

// Provider event type the reconciler cares about; all other event types are
// acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

var (
	// ErrInvalidSignature means the webhook body failed authentication.
	// The caller responds 400 and must not apply any state change.
	ErrInvalidSignature = errors.New("missing or invalid webhook signature")
	// ErrSessionNotFound is returned by RetrieveSession for unknown ids
	ErrSessionNotFound = errors.New("checkout session not found")
)

// CheckoutSessionParams describes the hosted payment page to open.
// Amount is in minor currency units (cents).
type CheckoutSessionParams struct {
	Amount        int64
	Currency      string
	ProductName   string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the provider-side session state
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// WebhookEvent is a verified provider notification. Session is non-nil for
// checkout session events.
type WebhookEvent struct {
	Type    string
	Session *CheckoutSession
}

// PaymentProvider is the hosted-checkout collaborator boundary
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	// VerifyWebhook authenticates the raw body against the signature header
	// and decodes the event envelope. The payload must be the untouched
	// request bytes; any transformation invalidates the signature.
	VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
