package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/services/notifications/internal/service"
)

type Handler struct {
	svc    *service.NotifySvc
	logger zerolog.Logger
}

func NewHandler(svc *service.NotifySvc, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/notify", h.Notify)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type notifyReq struct {
	UserID int64          `json:"user_id" binding:"required"`
	Title  string         `json:"title" binding:"required"`
	Body   string         `json:"body" binding:"required"`
	Data   map[string]any `json:"data"`
}

// POST /notify
func (h *Handler) Notify(c *gin.Context) {
	var req notifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	res, err := h.svc.NotifyUser(c.Request.Context(), req.UserID, req.Title, req.Body)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("notify failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
