package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kormo-mela/kormo-services/services/auth/internal/service"
)

type Handler struct {
	svc    *service.AuthSvc
	db     *gorm.DB
	logger zerolog.Logger
}

func NewHandler(svc *service.AuthSvc, db *gorm.DB, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, db: db, logger: logger}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.POST("/auth/otp/request", h.RequestOTP)
	r.POST("/auth/otp/verify", h.VerifyOTP)
	r.POST("/auth/token/refresh", h.RefreshToken)
	r.GET("/auth/me", h.Whoami)
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

type otpRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// POST /auth/otp/request — mock SMS, we only log the request.
func (h *Handler) RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	h.logger.Info().Str("phone", req.Phone).Msg("otp requested")
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Mock OTP sent (use code 123456)"})
}

type otpVerify struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// POST /auth/otp/verify
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req otpVerify
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	pair, err := h.svc.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	switch {
	case errors.Is(err, service.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid code"})
	case err != nil:
		h.logger.Error().Err(err).Msg("otp verify failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	default:
		c.JSON(http.StatusOK, pair)
	}
}

// POST /auth/token/refresh
func (h *Handler) RefreshToken(c *gin.Context) {
	tok, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Missing bearer token"})
		return
	}
	pair, err := h.svc.Refresh(tok)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Refresh token required"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// GET /auth/me
func (h *Handler) Whoami(c *gin.Context) {
	tok, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Missing bearer token"})
		return
	}
	claims, err := h.svc.Whoami(tok)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Access token required"})
		return
	}
	uid, _ := claims.UserID()
	c.JSON(http.StatusOK, gin.H{"id": uid, "phone": claims.Phone})
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(h[len("bearer "):]), true
}
