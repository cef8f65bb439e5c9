package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
	triage  *services.TriageService
}

func NewPatientHandler(service *services.PatientService, triage *services.TriageService) *PatientHandler {
	return &PatientHandler{service: service, triage: triage}
}

type createPatientProfileRequest struct {
	Name           string `json:"name"`
	DateOfBirth    string `json:"date_of_birth"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

type updatePatientProfileRequest struct {
	Name           *string `json:"name"`
	DateOfBirth    *string `json:"date_of_birth"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
	Symptoms       *string `json:"symptoms"`
}

type diagnoseRequest struct {
	Symptoms string `json:"symptoms"`
}

func (h *PatientHandler) CreateProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req createPatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.service.CreateProfile(c.Request.Context(), actor, services.CreatePatientProfileInput{
		Name:           req.Name,
		DateOfBirth:    req.DateOfBirth,
		Phone:          req.Phone,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) GetOwnProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	patient, err := h.service.GetOwnProfile(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) UpdateOwnProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req updatePatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.service.UpdateOwnProfile(c.Request.Context(), actor, services.UpdatePatientProfileInput{
		Name:           req.Name,
		DateOfBirth:    req.DateOfBirth,
		Phone:          req.Phone,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Symptoms:       req.Symptoms,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) MedicalHistory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	history, consultations, err := h.service.MedicalHistory(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"medical_history": history,
		"consultations":   consultations,
	})
}

func (h *PatientHandler) Diagnose(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diagnosis, result, err := h.triage.Diagnose(c.Request.Context(), actor, req.Symptoms)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"diagnosis_id": diagnosis.ID,
		"result":       result,
	})
}
