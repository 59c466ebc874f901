package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-sportclub-booking/internal/delivery/http/handler"
	"go-sportclub-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

func TestRouterSurface(t *testing.T) {
	router := NewRouter(RouterConfig{
		AuthHandler:    &handler.AuthHandler{},
		EventHandler:   &handler.EventHandler{},
		CoachHandler:   &handler.CoachHandler{},
		BookingHandler: &handler.BookingHandler{},
		PaymentHandler: &handler.PaymentHandler{},
		AuthMiddleware: &middleware.AuthMiddleware{},
		CORSMiddleware: &middleware.CORSMiddleware{},
	})

	const someID = "8f14e45f-ea4e-4c4b-b8f7-c4a5f7e3a001"

	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/v1/auth/refresh-token", true},
		{http.MethodPost, "/api/v1/auth/refresh", false},
		{http.MethodGet, "/api/v1/events", true},
		{http.MethodGet, "/api/v1/events/" + someID, true},
		{http.MethodPost, "/api/v1/payments/webhook", true},
		{http.MethodPost, "/api/v1/bookings/events", true},
		{http.MethodPost, "/api/v1/admin/events", true},
		{http.MethodPut, "/api/v1/admin/events/" + someID, true},
		{http.MethodGet, "/api/v1/admin/events/" + someID + "/bookings", true},
		{http.MethodPost, "/api/v1/admin/coaches", true},
		{http.MethodDelete, "/api/v1/admin/coaches/" + someID, true},
		// Catalog mutations only exist under the admin prefix
		{http.MethodPost, "/api/v1/events", false},
		{http.MethodDelete, "/api/v1/coaches/" + someID, false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			var match mux.RouteMatch
			if got := router.Match(req, &match); got != tt.want {
				t.Errorf("Match(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}
