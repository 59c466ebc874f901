package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-sportclub-booking/config"
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/delivery/http/middleware"
	"go-sportclub-booking/internal/domain/gateway"
	"go-sportclub-booking/internal/usecase"
	"go-sportclub-booking/pkg/response"
	"go-sportclub-booking/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Provider webhook bodies are small; anything larger is not a legitimate event
const maxWebhookBody = 65536

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	webhookUsecase usecase.WebhookUsecase
	provider       gateway.PaymentProvider
	stripeCfg      config.StripeConfig
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewPaymentHandler(
	paymentUsecase usecase.PaymentUsecase,
	webhookUsecase usecase.WebhookUsecase,
	provider gateway.PaymentProvider,
	stripeCfg config.StripeConfig,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		webhookUsecase: webhookUsecase,
		provider:       provider,
		stripeCfg:      stripeCfg,
		validator:      validator,
		log:            log,
	}
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.paymentUsecase.CreateCheckoutSession(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotOwned):
			response.Forbidden(w, "Booking belongs to another user")
		case errors.Is(err, usecase.ErrEventNotFound), errors.Is(err, usecase.ErrCoachNotFound):
			response.NotFound(w, "Booked subject no longer exists")
		case errors.Is(err, usecase.ErrEventNotBookable), errors.Is(err, usecase.ErrCoachNotBookable):
			response.Conflict(w, "Booked subject is no longer available")
		case errors.Is(err, usecase.ErrCheckoutCancelled):
			response.Conflict(w, "Cannot pay for a cancelled booking")
		case errors.Is(err, usecase.ErrCheckoutAlreadyPaid):
			response.Conflict(w, "Booking is already paid")
		case errors.Is(err, usecase.ErrCheckoutSessionExists):
			response.Conflict(w, "Booking already has a checkout session")
		case errors.Is(err, usecase.ErrPriceNotConfigured):
			response.ConfigError(w, "Subject price is not configured")
		case errors.Is(err, usecase.ErrPaymentUpstream):
			response.UpstreamError(w, "Payment provider is unavailable")
		default:
			response.InternalServerError(w, "Failed to create checkout session")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Checkout session created", session)
}

func (h *PaymentHandler) GetSessionStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		response.BadRequest(w, "Missing session ID")
		return
	}

	status, err := h.paymentUsecase.GetSessionStatus(r.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrSessionNotFound):
			response.NotFound(w, "Checkout session not found")
		case errors.Is(err, usecase.ErrSessionNotOwned):
			response.Forbidden(w, "Checkout session belongs to another user")
		case errors.Is(err, usecase.ErrPaymentUpstream):
			response.UpstreamError(w, "Payment provider is unavailable")
		default:
			response.InternalServerError(w, "Failed to get session status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session status retrieved", status)
}

// HandleWebhook receives provider notifications. The body must stay untouched
// until the signature is verified; after verification the endpoint always
// acknowledges with 200 so the provider stops retrying, even when
// reconciliation fails internally.
func (h *PaymentHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.stripeCfg.HasWebhookSecret() {
		h.log.Error("Webhook received but STRIPE_WEBHOOK_SECRET is not configured")
		response.ConfigError(w, "Webhook secret is not configured")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "Failed to read request body")
		return
	}

	event, err := h.provider.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.log.Warnf("Webhook signature verification failed: %+v", err)
		response.Error(w, http.StatusBadRequest, response.CodeAuth, "Missing or invalid webhook signature", nil)
		return
	}

	if err := h.webhookUsecase.HandleEvent(r.Context(), event); err != nil {
		// Acknowledged anyway: the event is authentic and reconciliation is
		// idempotent, a retry storm would not help
		h.log.Errorf("Webhook reconciliation failed for event %s: %+v", event.Type, err)
	}

	response.JSON(w, http.StatusOK, dto.WebhookAck{Received: true})
}
