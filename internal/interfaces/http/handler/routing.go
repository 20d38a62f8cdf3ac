package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	approuting "github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/application/routing"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/interfaces/http/dto"
)

// OrderProcessor runs one placement cycle
type OrderProcessor interface {
	ProcessOrders(ctx context.Context) (*approuting.ReconcileResult, error)
}

// StatusRefresher runs one status refresh cycle
type StatusRefresher interface {
	UpdatePlacedOrdersStatus(ctx context.Context) (*approuting.RefreshResult, error)
}

// RoutingHandler exposes manual triggers for the sync cycles. The scheduler
// runs the same cycles on its own; these endpoints exist for operations.
type RoutingHandler struct {
	processor OrderProcessor
	refresher StatusRefresher
	logger    *zap.Logger
}

// NewRoutingHandler creates a new RoutingHandler
func NewRoutingHandler(processor OrderProcessor, refresher StatusRefresher, logger *zap.Logger) *RoutingHandler {
	return &RoutingHandler{
		processor: processor,
		refresher: refresher,
		logger:    logger,
	}
}

// ProcessOrders triggers one order placement cycle
func (h *RoutingHandler) ProcessOrders(c *gin.Context) {
	result, err := h.processor.ProcessOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("Manual placement cycle failed", zap.Error(err))
		c.JSON(statusForError(err), dto.NewErrorResponse("PLACEMENT_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// RefreshPlacedOrders triggers one status refresh cycle
func (h *RoutingHandler) RefreshPlacedOrders(c *gin.Context) {
	result, err := h.refresher.UpdatePlacedOrdersStatus(c.Request.Context())
	if err != nil {
		h.logger.Error("Manual refresh cycle failed", zap.Error(err))
		c.JSON(statusForError(err), dto.NewErrorResponse("REFRESH_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// statusForError maps cycle-level errors to HTTP status codes
func statusForError(err error) int {
	if errors.Is(err, routing.ErrRoutingUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
