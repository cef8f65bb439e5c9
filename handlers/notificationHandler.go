package handlers

import (
	"CareLink/middlewares"
	"CareLink/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service     *services.NotificationService
	callRequest *services.CallRequestService
}

func NewNotificationHandler(service *services.NotificationService, callRequest *services.CallRequestService) *NotificationHandler {
	return &NotificationHandler{service: service, callRequest: callRequest}
}

type createCallRequestRequest struct {
	DoctorID uint   `json:"doctor_id"`
	CallType string `json:"call_type"`
	Message  string `json:"message"`
}

type respondCallRequestRequest struct {
	Decision string `json:"decision"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	unreadOnly := c.Query("unread_only") == "true"
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	notifications, total, err := h.service.List(c.Request.Context(), actor, unreadOnly, page, perPage)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"page":          page,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	notification, err := h.service.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	count, err := h.service.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": count})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	count, err := h.service.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func (h *NotificationHandler) CreateCallRequest(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req createCallRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.callRequest.Create(c.Request.Context(), actor, services.CreateCallRequestInput{
		DoctorID: req.DoctorID,
		CallType: req.CallType,
		Message:  req.Message,
	})
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) ListCallRequests(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	requests, err := h.callRequest.ListPending(c.Request.Context(), actor)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"call_requests": requests})
}

func (h *NotificationHandler) RespondCallRequest(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req respondCallRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.callRequest.Respond(c.Request.Context(), actor, id, req.Decision)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
