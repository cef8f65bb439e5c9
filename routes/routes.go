package routes

import (
	"CareLink/cache"
	"CareLink/controllers"
	"CareLink/handlers"
	"CareLink/middlewares"
	"CareLink/repositories"
	"CareLink/services"
	"CareLink/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, db *gorm.DB, email utils.EmailSender) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://carelink.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize the store, services, and handlers
	store := repositories.NewStore(db, cache)

	doctorService := services.NewDoctorService(store)
	patientService := services.NewPatientService(store)
	triageService := services.NewTriageService(store, nil)
	appointmentService := services.NewAppointmentService(store)
	consultationService := services.NewConsultationService(store)
	videoService := services.NewVideoService(store)
	notificationService := services.NewNotificationService(store)
	callRequestService := services.NewCallRequestService(store, email)

	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService, triageService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	videoHandler := handlers.NewVideoHandler(videoService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, callRequestService)

	// Register routes
	controllers.SetupTelehealthRoutes(
		router,
		doctorHandler,
		patientHandler,
		appointmentHandler,
		consultationHandler,
		videoHandler,
		notificationHandler,
	)

	controllers.SetupRootRoute(router)

	return router
}
