package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/services/payments/internal/repository"
	"github.com/kormo-mela/kormo-services/services/payments/internal/service"
)

const SignatureHeader = "X-Signature"

type Handler struct {
	svc    *service.PaymentSvc
	logger zerolog.Logger
}

func NewHandler(svc *service.PaymentSvc, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/payments/intent", h.CreateIntent)
	r.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /payments/intent
func (h *Handler) CreateIntent(c *gin.Context) {
	var req service.IntentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.svc.CreateIntent(req))
}

// POST /payments/webhook
func (h *Handler) Webhook(c *gin.Context) {
	// Signature is checked before the body is even parsed, so a bad caller
	// never reaches the store.
	if !h.svc.VerifySignature(c.GetHeader(SignatureHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid signature"})
		return
	}

	var evt service.WebhookEvent
	if err := c.ShouldBindJSON(&evt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	res, err := h.svc.HandleWebhook(c.Request.Context(), evt)
	switch {
	case errors.Is(err, service.ErrMissingBookingID):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing booking_id"})
	case errors.Is(err, repository.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "booking not found"})
	case err != nil:
		h.logger.Error().Err(err).Int64("booking_id", evt.Data.BookingID).Msg("webhook failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	default:
		c.JSON(http.StatusOK, res)
	}
}
