package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kormo-mela/kormo-services/pkg/auth"
)

func authRouter(tokens *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func getMe(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidAccessToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Minute, time.Hour)
	access, err := tokens.IssueAccess(42, "+8801700000000")
	require.NoError(t, err)

	w := getMe(authRouter(tokens), "Bearer "+access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Minute, time.Hour)
	w := getMe(authRouter(tokens), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectsRefreshScope(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Minute, time.Hour)
	refresh, err := tokens.IssueRefresh(42, "+8801700000000")
	require.NoError(t, err)

	w := getMe(authRouter(tokens), "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	other := auth.NewTokenIssuer("other-secret", time.Minute, time.Hour)
	forged, err := other.IssueAccess(42, "+8801700000000")
	require.NoError(t, err)

	tokens := auth.NewTokenIssuer("secret", time.Minute, time.Hour)
	w := getMe(authRouter(tokens), "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", -time.Minute, time.Hour)
	expired, err := tokens.IssueAccess(42, "+8801700000000")
	require.NoError(t, err)

	w := getMe(authRouter(tokens), "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
