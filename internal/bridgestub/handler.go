// Package bridgestub serves the device bridge protocol from an in-process
// alarm table so the scheduler can run against HTTP without a device.
package bridgestub

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/gateway"
)

type Handler struct {
	alarms *gateway.MemoryGateway
}

func NewHandler(alarms *gateway.MemoryGateway) *Handler {
	return &Handler{alarms: alarms}
}

// Register mounts the bridge API and the admin endpoints used to drive it.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api/v1")
	api.POST("/permission", h.HandlePermission)
	api.POST("/alarms/schedule", h.HandleSchedule)
	api.GET("/alarms/pending", h.HandlePending)
	api.POST("/alarms/cancel", h.HandleCancel)

	admin := r.Group("/admin")
	admin.POST("/reset", h.HandleReset)
	admin.PUT("/permission", h.HandleSetPermission)
	admin.GET("/alarms", h.HandleAlarms)
}

// POST /api/v1/permission
func (h *Handler) HandlePermission(c *gin.Context) {
	granted, err := h.alarms.RequestPermission(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"granted": granted})
}

// POST /api/v1/alarms/schedule
func (h *Handler) HandleSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.alarms.Schedule(c.Request.Context(), req.Alarms); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": "notification permission not granted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Debug("scheduled alarms", slog.Int("count", len(req.Alarms)))

	c.Status(http.StatusNoContent)
}

// GET /api/v1/alarms/pending
func (h *Handler) HandlePending(c *gin.Context) {
	pending, err := h.alarms.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, PendingResponse{Alarms: pending, Count: len(pending)})
}

// POST /api/v1/alarms/cancel
func (h *Handler) HandleCancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.alarms.Cancel(c.Request.Context(), req.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Debug("cancelled alarms", slog.Int("count", len(req.IDs)))

	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.alarms.Reset()

	slog.Info("reset alarm table")

	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}

func (h *Handler) HandleSetPermission(c *gin.Context) {
	var req PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.alarms.SetPermission(*req.Granted)

	slog.Info("permission changed", slog.Bool("granted", *req.Granted))

	c.JSON(http.StatusOK, gin.H{"granted": *req.Granted})
}

// GET /admin/alarms returns full alarm content, which the bridge API does not.
func (h *Handler) HandleAlarms(c *gin.Context) {
	alarms := h.alarms.Alarms()
	c.JSON(http.StatusOK, gin.H{"alarms": alarms, "count": len(alarms)})
}
