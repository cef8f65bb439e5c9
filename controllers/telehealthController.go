package controllers

import (
	"CareLink/handlers"
	"CareLink/middlewares"
	"CareLink/models"

	"github.com/gin-gonic/gin"
)

// SetupTelehealthRoutes registers every authenticated route. All groups sit
// behind the token middleware; role checks beyond coarse gating live in the
// services.
func SetupTelehealthRoutes(
	router *gin.Engine,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	consultationHandler *handlers.ConsultationHandler,
	videoHandler *handlers.VideoHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	doctor := router.Group("/doctor", middlewares.TokenAuthMiddleware())
	{
		doctor.GET("/available", doctorHandler.ListAvailable)
		doctor.GET("/profile", doctorHandler.GetOwnProfile)
		doctor.PUT("/profile", doctorHandler.UpdateOwnProfile)
		doctor.POST("/profile", middlewares.RoleAuthMiddleware(models.RoleAdmin), doctorHandler.CreateProfile)
		doctor.GET("/patients", doctorHandler.ListPatients)
		doctor.GET("/:id", doctorHandler.GetByID)
	}

	patient := router.Group("/patient", middlewares.TokenAuthMiddleware())
	{
		patient.GET("/profile", patientHandler.GetOwnProfile)
		patient.PUT("/profile", patientHandler.UpdateOwnProfile)
		patient.POST("/profile", patientHandler.CreateProfile)
		patient.GET("/medical-history", patientHandler.MedicalHistory)
		patient.POST("/diagnose", middlewares.RoleAuthMiddleware(models.RolePatient), patientHandler.Diagnose)
	}

	appointment := router.Group("/appointment", middlewares.TokenAuthMiddleware())
	{
		appointment.POST("/book", appointmentHandler.Book)
		appointment.GET("/my-appointments", appointmentHandler.ListMine)
		appointment.GET("/:id", appointmentHandler.Get)
		appointment.PUT("/:id/status", appointmentHandler.UpdateStatus)
		appointment.PUT("/:id/notes", appointmentHandler.UpdateNotes)
	}

	consultation := router.Group("/consultation", middlewares.TokenAuthMiddleware())
	{
		consultation.POST("/start", consultationHandler.Start)
		consultation.PUT("/:id/end", consultationHandler.End)
		consultation.GET("/my-consultations", consultationHandler.ListMine)
		consultation.GET("/active", consultationHandler.ListActive)
		consultation.GET("/:id/messages", consultationHandler.ListMessages)
		consultation.POST("/:id/messages", consultationHandler.SendMessage)
	}

	video := router.Group("/video", middlewares.TokenAuthMiddleware())
	{
		video.POST("/session/start", videoHandler.StartSession)
		video.POST("/session/join/:token", videoHandler.JoinSession)
		video.POST("/session/end/:id", videoHandler.EndSession)
		video.GET("/sessions", videoHandler.ListSessions)
	}

	notification := router.Group("/notification", middlewares.TokenAuthMiddleware())
	{
		notification.GET("", notificationHandler.List)
		notification.PUT("/:id/read", notificationHandler.MarkRead)
		notification.PUT("/read-all", notificationHandler.MarkAllRead)
		notification.GET("/unread-count", notificationHandler.UnreadCount)
		notification.DELETE("/:id", notificationHandler.Delete)
		notification.POST("/call-request", middlewares.RoleAuthMiddleware(models.RolePatient), notificationHandler.CreateCallRequest)
		notification.GET("/call-requests", middlewares.RoleAuthMiddleware(models.RoleDoctor), notificationHandler.ListCallRequests)
		notification.POST("/call-request/:id/respond", middlewares.RoleAuthMiddleware(models.RoleDoctor), notificationHandler.RespondCallRequest)
	}
}
