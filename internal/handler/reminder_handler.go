package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
)

// ReminderManager is the subset of the reminder manager the HTTP layer drives.
type ReminderManager interface {
	Enable(ctx context.Context, category domain.Category) reminder.PassResult
	Disable(ctx context.Context, category domain.Category) reminder.PassResult
	Refresh(ctx context.Context, category domain.Category) reminder.PassResult
	State(category domain.Category) reminder.State
	Pending(ctx context.Context) (map[domain.Category][]int, error)
	OnCreditSale(ctx context.Context) reminder.PassResult
	OnStockDeducted(ctx context.Context, goods []domain.Good) reminder.PassResult
	OnSaleCompleted(ctx context.Context) reminder.PassResult
	OnCreditorChanged(ctx context.Context) reminder.PassResult
	OnSettingsChanged(ctx context.Context, prev, next domain.Preferences) []reminder.PassResult
}

type ReminderHandler struct {
	manager ReminderManager
}

func NewReminderHandler(manager ReminderManager) *ReminderHandler {
	return &ReminderHandler{
		manager: manager,
	}
}

func (h *ReminderHandler) HandleEnable(c *gin.Context) {
	h.withCategory(c, h.manager.Enable)
}

func (h *ReminderHandler) HandleDisable(c *gin.Context) {
	h.withCategory(c, h.manager.Disable)
}

func (h *ReminderHandler) HandleRefresh(c *gin.Context) {
	h.withCategory(c, h.manager.Refresh)
}

func (h *ReminderHandler) HandleState(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"state":    h.manager.State(category).String(),
	})
}

func (h *ReminderHandler) HandlePending(c *gin.Context) {
	ctx := c.Request.Context()

	pending, err := h.manager.Pending(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list pending alarms", slog.String("error", err.Error()))
		respondError(c, http.StatusBadGateway, "gateway_error", "failed to list pending alarms")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

func (h *ReminderHandler) HandleCreditSale(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.OnCreditSale(c.Request.Context()))
}

func (h *ReminderHandler) HandleSaleCompleted(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.OnSaleCompleted(c.Request.Context()))
}

func (h *ReminderHandler) HandleCreditorChanged(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.OnCreditorChanged(c.Request.Context()))
}

type goodRequest struct {
	ID            string  `json:"id" binding:"required"`
	Name          string  `json:"name"`
	StockQuantity float64 `json:"stock_quantity"`
}

type stockDeductedRequest struct {
	Goods []goodRequest `json:"goods" binding:"dive"`
}

// HandleStockDeducted accepts an optional goods snapshot. Without a body the
// goods are read from the store.
func (h *ReminderHandler) HandleStockDeducted(c *gin.Context) {
	ctx := c.Request.Context()

	var req stockDeductedRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "request validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	var goods []domain.Good
	if req.Goods != nil {
		goods = make([]domain.Good, 0, len(req.Goods))
		for _, g := range req.Goods {
			goods = append(goods, domain.Good{ID: g.ID, Name: g.Name, StockQuantity: g.StockQuantity})
		}
	}

	c.JSON(http.StatusOK, h.manager.OnStockDeducted(ctx, goods))
}

func (h *ReminderHandler) withCategory(c *gin.Context, fn func(context.Context, domain.Category) reminder.PassResult) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fn(c.Request.Context(), category))
}

func categoryParam(c *gin.Context) (domain.Category, bool) {
	category, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown_category", err.Error())
		return "", false
	}
	return category, true
}
