package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"krib/config"
	"krib/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthContractorMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"contractorID": c.GetString("contractorID")})
	})
	return r
}

func TestContractorAuthAcceptsValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAuthRouter()

	token, err := utils.GenerateToken("ctr1", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ctr1")
}

func TestContractorAuthRejectsMissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContractorAuthRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAuthRouter()

	token, err := utils.GenerateToken("ctr1", -time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
