package routes

import (
	"net/http"
	"testing"

	"docassist/handlers"

	"github.com/gin-gonic/gin"
)

// The surface keeps a few older path shapes alive alongside the current
// ones so existing frontends keep working.
func TestRegisteredPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hb := &handlers.HandlerBundle{
		Auth:        &handlers.AuthHandler{},
		User:        &handlers.UserHandler{},
		Doctor:      &handlers.DoctorHandler{},
		Appointment: &handlers.AppointmentHandler{},
		Payment:     &handlers.PaymentHandler{},
		Chat:        &handlers.ChatHandler{},
	}
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAdminRoutes(r, hb)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/users/me",
		http.MethodPost + " /api/users/me/image",
		http.MethodDelete + " /api/users/me/image",
		http.MethodGet + " /api/doctors",
		http.MethodPost + " /api/appointments",
		http.MethodGet + " /api/appointments/all",
		http.MethodPost + " /api/payments/webhook",
		http.MethodGet + " /api/payments/verify",
		http.MethodGet + " /api/payments/verify/:session_id",
		http.MethodPost + " /api/chat",
		http.MethodPost + " /api/chatbot",
		http.MethodGet + " /api/admin/appointments",
		http.MethodDelete + " /api/admin/users/:id",
	}
	for _, w := range want {
		if !registered[w] {
			t.Errorf("route %s not registered", w)
		}
	}
}
