package httpx

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kormo-mela/kormo-services/pkg/auth"
	"github.com/kormo-mela/kormo-services/pkg/web"
	"github.com/kormo-mela/kormo-services/services/provider/internal/domain"
)

// ProviderStore is the directory persistence; *repository.ProviderRepo
// satisfies it.
type ProviderStore interface {
	List(ctx context.Context, limit int) ([]domain.Provider, error)
	Create(ctx context.Context, p *domain.Provider) error
	RegisterDevice(ctx context.Context, d *domain.Device) error
}

type Handler struct {
	repo   ProviderStore
	tokens *auth.TokenIssuer
	db     *gorm.DB
	logger zerolog.Logger
}

func NewHandler(repo ProviderStore, tokens *auth.TokenIssuer, db *gorm.DB, logger zerolog.Logger) *Handler {
	return &Handler{repo: repo, tokens: tokens, db: db, logger: logger}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/providers", h.List)
	r.POST("/providers", h.Create)
	r.POST("/devices/register", web.JWTAuth(h.tokens), h.RegisterDevice)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusOK, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// GET /providers — latest 50
func (h *Handler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context(), 50)
	if err != nil {
		h.logger.Error().Err(err).Msg("list providers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type createProviderReq struct {
	Name      string   `json:"name" binding:"required"`
	Verified  bool     `json:"verified"`
	RatingAvg *float64 `json:"rating_avg"`
	Skills    *string  `json:"skills"`
	PriceBand *string  `json:"price_band"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

// POST /providers
func (h *Handler) Create(c *gin.Context) {
	var req createProviderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	p := domain.Provider{
		Name:      req.Name,
		Verified:  req.Verified,
		RatingAvg: req.RatingAvg,
		Skills:    req.Skills,
		PriceBand: req.PriceBand,
		Lat:       req.Lat,
		Lon:       req.Lon,
	}
	if err := h.repo.Create(c.Request.Context(), &p); err != nil {
		h.logger.Error().Err(err).Msg("create provider failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

type registerDeviceReq struct {
	PushToken string `json:"push_token" binding:"required"`
	Platform  string `json:"platform"`
}

// POST /devices/register
func (h *Handler) RegisterDevice(c *gin.Context) {
	var req registerDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.Platform == "" {
		req.Platform = "ios"
	}
	d := domain.Device{UserID: web.UserID(c), PushToken: req.PushToken, Platform: req.Platform}
	if err := h.repo.RegisterDevice(c.Request.Context(), &d); err != nil {
		h.logger.Error().Err(err).Msg("register device failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true})
}
