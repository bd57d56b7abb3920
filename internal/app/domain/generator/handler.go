package generator

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/app/models"
	"github.com/FACorreiaa/loci-planner/internal/app/observability/metrics"
)

// ItineraryGenerator is what the handler needs from Service.
type ItineraryGenerator interface {
	Generate(ctx context.Context, req models.ItineraryRequest) (*models.ItineraryResult, error)
}

type Handler struct {
	service     ItineraryGenerator
	serviceName string
	logger      *zap.Logger
	metrics     *metrics.AppMetrics
}

func NewHandler(service ItineraryGenerator, logger *zap.Logger, m *metrics.AppMetrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:     service,
		serviceName: "AI Travel Planner",
		logger:      logger,
		metrics:     m,
	}
}

// GenerateItinerary serves POST /api/generate-itinerary.
// Errors are answered as {"detail": "..."}.
func (h *Handler) GenerateItinerary(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid itinerary request body", zap.Error(err))
		h.metrics.RecordGeneration(ctx, "invalid")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: models.MsgInvalidBody})
		return
	}

	h.logger.Info("Received itinerary request",
		zap.String("city", req.City),
		zap.Strings("interests", req.Interests),
	)

	result, err := h.service.Generate(ctx, req)
	if err != nil {
		status, detail := errorResponse(err)
		h.metrics.RecordGeneration(ctx, "error")
		if status == http.StatusBadRequest {
			h.logger.Warn("Itinerary request rejected", zap.String("detail", detail))
		} else {
			h.logger.Error("Itinerary generation failed", zap.Error(err))
		}
		c.JSON(status, models.ErrorResponse{Detail: detail})
		return
	}

	h.metrics.RecordGeneration(ctx, "success")
	c.JSON(http.StatusOK, result)
}

// Health serves GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy", Service: h.serviceName})
}

func errorResponse(err error) (int, string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.UserMessage()
	case errors.Is(err, models.ErrGeneration):
		return http.StatusInternalServerError, models.MsgTransportFailed
	default:
		return http.StatusInternalServerError, models.MsgUnexpected
	}
}
