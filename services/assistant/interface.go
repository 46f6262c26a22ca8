package assistant

import (
	"context"

	"docassist/models"
	"docassist/services/booking"
	"docassist/services/doctor"
	"docassist/services/user"
)

// AuthContext is the identity of the caller, resolved once per request by
// the HTTP layer. A nil *AuthContext means the caller is anonymous.
type AuthContext struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

func (a *AuthContext) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// AssistantService turns a free-text chat message into a tool invocation
// or a conversational reply. The returned string is the reply body: either
// a rendered models.Envelope or plain text.
type AssistantService interface {
	HandleMessage(ctx context.Context, auth *AuthContext, message string) (string, error)
}

// DefaultAssistantService is the production implementation: a Gemini-backed
// intent resolver in front of a static dispatch table over the domain
// services.
type DefaultAssistantService struct {
	Resolver IntentResolver
	CtxStore *RedisContextStore
	Users    user.UserService
	Doctors  doctor.DoctorService
	Booking  booking.BookingService
}

func NewAssistantService(
	resolver IntentResolver,
	ctxStore *RedisContextStore,
	users user.UserService,
	doctors doctor.DoctorService,
	bookingSvc booking.BookingService,
) *DefaultAssistantService {
	return &DefaultAssistantService{
		Resolver: resolver,
		CtxStore: ctxStore,
		Users:    users,
		Doctors:  doctors,
		Booking:  bookingSvc,
	}
}
