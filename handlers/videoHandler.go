package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	service *services.VideoService
}

func NewVideoHandler(service *services.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

type startSessionRequest struct {
	ConsultationID uint `json:"consultation_id"`
}

func (h *VideoHandler) StartSession(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, created, err := h.service.Start(c.Request.Context(), actor, req.ConsultationID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, session)
}

func (h *VideoHandler) JoinSession(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session token"})
		return
	}

	result, err := h.service.Join(c.Request.Context(), actor, token)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *VideoHandler) EndSession(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	session, err := h.service.End(c.Request.Context(), actor, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *VideoHandler) ListSessions(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	sessions, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
