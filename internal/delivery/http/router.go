package http

import (
	"net/http"

	"go-sportclub-booking/internal/delivery/http/handler"
	"go-sportclub-booking/internal/delivery/http/middleware"
	"go-sportclub-booking/pkg/response"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	EventHandler   *handler.EventHandler
	CoachHandler   *handler.CoachHandler
	BookingHandler *handler.BookingHandler
	PaymentHandler *handler.PaymentHandler
	AuthMiddleware *middleware.AuthMiddleware
	CORSMiddleware *middleware.CORSMiddleware
}

func NewRouter(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(cfg.CORSMiddleware.Handle)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "OK", nil)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/register", cfg.AuthHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", cfg.AuthHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", cfg.AuthHandler.RefreshToken).Methods(http.MethodPost)

	// Public catalog routes
	api.HandleFunc("/events", cfg.EventHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", cfg.EventHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/coaches", cfg.CoachHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/coaches/{id}", cfg.CoachHandler.GetByID).Methods(http.MethodGet)

	// Provider webhook: authenticated by signature, never by JWT
	api.HandleFunc("/payments/webhook", cfg.PaymentHandler.HandleWebhook).Methods(http.MethodPost)

	// Authenticated routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(cfg.AuthMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", cfg.AuthHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", cfg.AuthHandler.Me).Methods(http.MethodGet)

	protected.HandleFunc("/bookings/events", cfg.BookingHandler.CreateEventBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/coaches", cfg.BookingHandler.CreateCoachBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", cfg.BookingHandler.GetMyBookings).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{type}/{id}/cancel", cfg.BookingHandler.CancelBooking).Methods(http.MethodPost)

	protected.HandleFunc("/payments/checkout", cfg.PaymentHandler.CreateCheckout).Methods(http.MethodPost)
	protected.HandleFunc("/payments/sessions/{id}", cfg.PaymentHandler.GetSessionStatus).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(cfg.AuthMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/events", cfg.EventHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/events/{id}", cfg.EventHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/events/{id}", cfg.EventHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/events/{id}/bookings", cfg.BookingHandler.ListEventBookings).Methods(http.MethodGet)
	admin.HandleFunc("/coaches", cfg.CoachHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/coaches/{id}", cfg.CoachHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/coaches/{id}", cfg.CoachHandler.Delete).Methods(http.MethodDelete)

	return router
}
