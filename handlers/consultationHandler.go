package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	service *services.ConsultationService
}

func NewConsultationHandler(service *services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

type startConsultationRequest struct {
	DoctorID         uint   `json:"doctor_id"`
	PatientID        uint   `json:"patient_id"`
	ConsultationType string `json:"consultation_type"`
	AppointmentID    *uint  `json:"appointment_id"`
}

type endConsultationRequest struct {
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

type sendMessageRequest struct {
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
}

func (h *ConsultationHandler) Start(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req startConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultation, err := h.service.Start(c.Request.Context(), actor, services.StartConsultationInput{
		DoctorID:         req.DoctorID,
		PatientID:        req.PatientID,
		ConsultationType: req.ConsultationType,
		AppointmentID:    req.AppointmentID,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, consultation)
}

func (h *ConsultationHandler) End(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req endConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultation, err := h.service.End(c.Request.Context(), actor, id, services.EndConsultationInput{
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *ConsultationHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	consultations, err := h.service.ListMine(c.Request.Context(), actor, false)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

func (h *ConsultationHandler) ListActive(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	consultations, err := h.service.ListMine(c.Request.Context(), actor, true)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

func (h *ConsultationHandler) SendMessage(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), actor, id, req.Message, req.MessageType)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *ConsultationHandler) ListMessages(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	messages, err := h.service.ListMessages(c.Request.Context(), actor, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
