package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-matching-service/internal/api/dto"
	"freight-matching-service/internal/platform/logger"
	"freight-matching-service/internal/services"
)

type OrderHandler struct {
	Processor *services.OrderProcessor
	Log       logger.Logger
}

// Validate checks a single order against one route and truck.
func (h *OrderHandler) Validate(c *gin.Context) {
	var req dto.ValidateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}

	res := h.Processor.ValidateOrderForRoute(*req.Order, *req.Route, *req.Truck)
	c.JSON(http.StatusOK, res)
}

// Batch picks the best route/truck pair for every order.
func (h *OrderHandler) Batch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}

	results, err := h.Processor.ProcessOrderBatch(c.Request.Context(), req.Orders, req.Routes, req.Trucks)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		h.Log.Warnf("order batch aborted: %v", err)
		writeError(c, http.StatusServiceUnavailable, "request timed out")
		return
	}
	if err != nil {
		h.Log.Errorf("order batch failed: %v", err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.BatchResponse{Results: results}
	for _, r := range results {
		if r.IsValid {
			res.Valid++
		} else {
			res.Invalid++
		}
	}
	c.JSON(http.StatusOK, res)
}
