package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kormo-mela/kormo-services/services/search/internal/service"
)

type Handler struct {
	svc    *service.SearchSvc
	db     *gorm.DB
	logger zerolog.Logger
}

func NewHandler(svc *service.SearchSvc, db *gorm.DB, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, db: db, logger: logger}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.POST("/search/providers", h.Search)
}

func (h *Handler) Health(c *gin.Context) {
	if !h.svc.CacheHealthy(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil || !h.svc.CacheHealthy(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// POST /search/providers
func (h *Handler) Search(c *gin.Context) {
	var req service.SearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input"})
		return
	}

	res, err := h.svc.Search(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Out of bounds"})
	case err != nil:
		h.logger.Error().Err(err).Msg("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	default:
		c.JSON(http.StatusOK, res)
	}
}
