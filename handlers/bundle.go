package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Auth        *AuthHandler
	User        *UserHandler
	Doctor      *DoctorHandler
	Appointment *AppointmentHandler
	Payment     *PaymentHandler
	Chat        *ChatHandler
}
