package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	DoctorID      uint   `json:"doctor_id"`
	AppointmentAt string `json:"appointment_at"`
	Reason        string `json:"reason"`
	Notes         string `json:"notes"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type updateAppointmentNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appointmentAt, err := time.Parse(time.RFC3339, req.AppointmentAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment_at must be RFC3339"})
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), actor, services.BookAppointmentInput{
		DoctorID:      req.DoctorID,
		AppointmentAt: appointmentAt,
		Reason:        req.Reason,
		Notes:         req.Notes,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	appointments, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req.Status, req.Notes)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateAppointmentNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := h.service.UpdateNotes(c.Request.Context(), actor, id, req.Notes)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}
