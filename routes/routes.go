package routes

import (
	"net/http"
	"time"

	"docassist/config"
	"docassist/handlers"
	"docassist/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires registration, login and the password-reset flow.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/forgot-password", hb.Auth.ForgotPasswordHandler)
		api.POST("/reset-password", hb.Auth.ResetPasswordHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/me", hb.Auth.MeHandler)
	}
}

// RegisterUserRoutes wires the profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/me", hb.User.GetProfileHandler)
		api.PUT("/me", hb.User.UpdateProfileHandler)
		api.POST("/me/image", hb.User.UploadProfileImageHandler)
		api.DELETE("/me/image", hb.User.DeleteProfileImageHandler)
	}
}

// RegisterDoctorRoutes wires the public doctor directory.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("", hb.Doctor.ListDoctorsHandler)
		api.GET("/:id", hb.Doctor.GetDoctorHandler)
	}
}

// RegisterAppointmentRoutes wires the booking lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.Appointment.InitiateBookingHandler)
		api.GET("", hb.Appointment.ListMyAppointmentsHandler)
		api.GET("/all", middleware.AdminMiddleware(), hb.Appointment.ListAllAppointmentsHandler)
		api.POST("/:id/cancel", hb.Appointment.CancelAppointmentHandler)
	}
}

// RegisterPaymentRoutes wires the provider callbacks. Both endpoints are
// unauthenticated: the webhook authenticates via signature, and the verify
// poll may arrive in a fresh browser session.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Payment.WebhookHandler)
		api.GET("/verify", hb.Payment.VerifyHandler)
		api.GET("/verify/:session_id", hb.Payment.VerifyHandler)
	}
}

// RegisterChatRoutes wires the assistant. Anonymous access is allowed;
// the assistant gates individual tools. /chatbot is the legacy path older
// frontends post to.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	optional := middleware.OptionalAuthMiddleware()
	r.POST("/api/chat", optional, hb.Chat.ChatMessageHandler)
	r.POST("/api/chatbot", optional, hb.Chat.ChatMessageHandler)
}

// RegisterAdminRoutes wires the admin surface.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		api.GET("/users", hb.User.GetAllUsersHandler)
		api.PUT("/users/:id", hb.User.AdminUpdateUserHandler)
		api.DELETE("/users/:id", hb.User.DeleteUserHandler)

		api.POST("/doctors", hb.Doctor.AddDoctorHandler)
		api.PUT("/doctors/:id", hb.Doctor.UpdateDoctorHandler)
		api.DELETE("/doctors/:id", hb.Doctor.DeleteDoctorHandler)
		api.POST("/doctors/:id/image", hb.Doctor.UploadDoctorImageHandler)

		api.GET("/appointments", hb.Appointment.ListAllAppointmentsHandler)
	}
}

// RegisterHealthRoute exposes a liveness probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
