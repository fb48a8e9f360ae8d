package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/dto"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/repository"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/service"
)

type Handler struct {
	lifecycle  service.LifecycleServicer
	deliveries repository.DeliveryRepository
	router     *gin.Engine
	log        *zap.Logger
}

// NewHandler builds the router. deliveries may be nil when the audit store
// is not configured; the health check then covers only the service itself.
func NewHandler(lifecycle service.LifecycleServicer, deliveries repository.DeliveryRepository, log *zap.Logger) *Handler {
	h := &Handler{
		lifecycle:  lifecycle,
		deliveries: deliveries,
		router:     gin.Default(),
		log:        log,
	}

	h.router.Use(cors.New(cors.Config{
		AllowOrigins:              []string{"*"},
		AllowMethods:              []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/webhook", h.receiveWebhook)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	if h.deliveries != nil {
		if err := h.deliveries.Ping(c.Request.Context()); err != nil {
			h.log.Warn("Delivery audit store unreachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// receiveWebhook handles POST /webhook. Malformed bodies, missing required
// payload fields, and unmapped applications are the sender's fault (400);
// remote API failures are ours (500) and rely on the marketplace redelivering.
// Ignored event kinds and skipped updates still acknowledge with 200.
func (h *Handler) receiveWebhook(c *gin.Context) {
	var req dto.WebhookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid webhook request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid payload data",
		})
		return
	}

	h.log.Info("Webhook received", zap.String("type", req.Type))

	result, err := h.lifecycle.HandleEvent(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrBoardNotMapped) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "mapping_error",
				Message: "No board mapping found for app.",
			})
			return
		}

		h.log.Error("Failed to handle webhook event",
			zap.String("type", req.Type),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: "Error handling webhook event.",
		})
		return
	}

	message := "Webhook processed successfully."
	if result.Outcome == domain.OutcomeIgnored {
		message = "Event type ignored."
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Status:  result.Outcome,
		Message: message,
	})
}
