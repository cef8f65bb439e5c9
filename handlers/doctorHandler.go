package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

type createDoctorProfileRequest struct {
	UserID          uint   `json:"user_id"`
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	LicenseNumber   string `json:"license_number"`
	ExperienceYears int    `json:"experience_years"`
	Phone           string `json:"phone"`
	Bio             string `json:"bio"`
}

type updateDoctorProfileRequest struct {
	Name            *string `json:"name"`
	Specialization  *string `json:"specialization"`
	ExperienceYears *int    `json:"experience_years"`
	Phone           *string `json:"phone"`
	Bio             *string `json:"bio"`
	IsAvailable     *bool   `json:"is_available"`
}

func (h *DoctorHandler) CreateProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req createDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor, err := h.service.CreateProfile(c.Request.Context(), actor, services.CreateDoctorProfileInput{
		UserID:          req.UserID,
		Name:            req.Name,
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
		ExperienceYears: req.ExperienceYears,
		Phone:           req.Phone,
		Bio:             req.Bio,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) GetOwnProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	doctor, err := h.service.GetOwnProfile(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) UpdateOwnProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req updateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor, err := h.service.UpdateOwnProfile(c.Request.Context(), actor, services.UpdateDoctorProfileInput{
		Name:            req.Name,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Phone:           req.Phone,
		Bio:             req.Bio,
		IsAvailable:     req.IsAvailable,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doctor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) ListAvailable(c *gin.Context) {
	doctors, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (h *DoctorHandler) ListPatients(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	patients, err := h.service.ListPatients(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}
