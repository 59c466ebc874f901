package dto

// Request DTOs

type CreateCheckoutRequest struct {
	BookingID   string `json:"booking_id" validate:"required,uuid"`
	BookingType string `json:"booking_type" validate:"required,oneof=event coach"`
}

// Response DTOs

// CheckoutSessionResponse carries the hosted payment page handle. For free
// subjects PaymentRequired is false and the booking is already confirmed.
type CheckoutSessionResponse struct {
	SessionID       string `json:"session_id,omitempty"`
	RedirectURL     string `json:"redirect_url,omitempty"`
	PaymentRequired bool   `json:"payment_required"`
}

type SessionStatusResponse struct {
	SessionID     string            `json:"session_id"`
	PaymentStatus string            `json:"payment_status"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// WebhookAck is the provider-facing acknowledgment body
type WebhookAck struct {
	Received bool `json:"received"`
}
