package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-sportclub-booking/config"
	"go-sportclub-booking/internal/domain/gateway"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeProvider implements gateway.PaymentProvider on Stripe Checkout.
// The API client and the webhook signing secret are injected at construction;
// nothing reads global stripe state.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

func NewStripeProvider(cfg config.StripeConfig) (*StripeProvider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is not configured")
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, stripe.NewBackends(&http.Client{Timeout: cfg.Timeout}))

	return &StripeProvider{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params gateway.CheckoutSessionParams) (*gateway.CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(params.ProductName),
						Description: stripe.String(params.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	sess, err := p.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session create: %w", err)
	}

	return toGatewaySession(sess), nil
}

// VerifyWebhook authenticates the raw body via the Stripe-Signature scheme
// (HMAC-SHA256 over "<timestamp>.<body>", constant-time compare, bounded
// timestamp tolerance) and decodes the event envelope.
func (p *StripeProvider) VerifyWebhook(payload []byte, signatureHeader string) (*gateway.WebhookEvent, error) {
	if p.webhookSecret == "" || signatureHeader == "" {
		return nil, gateway.ErrInvalidSignature
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidSignature, err)
	}

	result := &gateway.WebhookEvent{Type: string(event.Type)}

	if string(event.Type) == gateway.EventCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session payload: %w", err)
		}
		result.Session = toGatewaySession(&sess)
	}

	return result, nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, gateway.ErrSessionNotFound
		}
		return nil, fmt.Errorf("stripe checkout session retrieve: %w", err)
	}

	return toGatewaySession(sess), nil
}

func toGatewaySession(sess *stripe.CheckoutSession) *gateway.CheckoutSession {
	result := &gateway.CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CustomerEmail: sess.CustomerEmail,
		Metadata:      sess.Metadata,
	}
	if result.CustomerEmail == "" && sess.CustomerDetails != nil {
		result.CustomerEmail = sess.CustomerDetails.Email
	}
	return result
}
