package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docassist/config"
	"docassist/cron"
	"docassist/database"
	appointmentRepoPkg "docassist/database/repository/appointment"
	doctorRepoPkg "docassist/database/repository/doctor"
	userRepoPkg "docassist/database/repository/user"
	"docassist/handlers"
	"docassist/routes"
	"docassist/services/assistant"
	"docassist/services/booking"
	"docassist/services/doctor"
	"docassist/services/notification"
	"docassist/services/storage"
	"docassist/services/tasks"
	"docassist/services/user"
	"docassist/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitChatContextCache()

	storageSvc, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize image storage: %v", err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// Services.
	mailer := notification.NewMailgunService()
	reminderScheduler := tasks.NewAsynqScheduler()
	defer reminderScheduler.Close()

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		ApptRepo: apptRepo,
		Mailer:   mailer,
	}
	doctorService := &doctor.DefaultDoctorService{
		Repo:     doctorRepo,
		ApptRepo: apptRepo,
	}
	gateway := booking.NewStripeGateway()
	bookingService := &booking.DefaultBookingService{
		ApptRepo:   apptRepo,
		DoctorRepo: doctorRepo,
		Gateway:    gateway,
		Notifier:   mailer,
		Reminders:  reminderScheduler,
	}

	ctxStore := assistant.NewRedisContextStore(utils.GetChatContextClient(), assistant.DefaultContextTTL)
	assistantService := assistant.NewAssistantService(
		assistant.NewGeminiClient(config.AppConfig.GeminiAPIKey),
		ctxStore,
		userService,
		doctorService,
		bookingService,
	)

	// Background reminder worker.
	cron.InitReminderWorker(mailer)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:   &handlers.AuthHandler{UserService: userService},
		User:   &handlers.UserHandler{UserService: userService, StorageSvc: storageSvc},
		Doctor: &handlers.DoctorHandler{DoctorService: doctorService, StorageSvc: storageSvc},
		Appointment: &handlers.AppointmentHandler{
			BookingService: bookingService,
			UserService:    userService,
		},
		Payment: &handlers.PaymentHandler{BookingService: bookingService, Gateway: gateway},
		Chat:    &handlers.ChatHandler{Assistant: assistantService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
