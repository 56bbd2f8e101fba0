package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

type SettingsStore interface {
	Preferences(ctx context.Context) (domain.Preferences, error)
	SavePreferences(ctx context.Context, prefs domain.Preferences) error
}

type Purger interface {
	RunOnce(ctx context.Context) (int, error)
}

type SettingsHandler struct {
	store   SettingsStore
	manager ReminderManager
	purger  Purger
}

func NewSettingsHandler(store SettingsStore, manager ReminderManager, purger Purger) *SettingsHandler {
	return &SettingsHandler{
		store:   store,
		manager: manager,
		purger:  purger,
	}
}

func (h *SettingsHandler) HandleGetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	prefs, err := h.store.Preferences(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read preferences", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to read settings")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// HandleUpdateSettings stores the new toggles and enables or disables every
// category whose flag flipped.
func (h *SettingsHandler) HandleUpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var next domain.Preferences
	if err := c.ShouldBindJSON(&next); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	prev, err := h.store.Preferences(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read preferences", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to read settings")
		return
	}

	if err := h.store.SavePreferences(ctx, next); err != nil {
		slog.ErrorContext(ctx, "failed to save preferences", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to save settings")
		return
	}

	results := h.manager.OnSettingsChanged(ctx, prev, next)

	slog.InfoContext(ctx, "settings updated",
		slog.Int("pass_count", len(results)),
	)

	c.JSON(http.StatusOK, gin.H{
		"settings": next,
		"passes":   results,
	})
}

func (h *SettingsHandler) HandlePurge(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.purger.RunOnce(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to purge dedup markers", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to purge markers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
