package middlewares

import (
	"CareLink/models"
	"CareLink/services"
	"CareLink/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "0123456789abcdef0123456789abcdef"

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/me", TokenAuthMiddleware(), func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
	})
	router.GET("/doctor-only", TokenAuthMiddleware(), RoleAuthMiddleware(models.RoleDoctor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestTokenAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router := newAuthRouter(t)

	token, err := utils.GenerateAccessToken(7, models.RolePatient)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
	assert.Contains(t, rec.Body.String(), `"role":"patient"`)
}

func TestTokenAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleAuthMiddlewareEnforcesRole(t *testing.T) {
	router := newAuthRouter(t)

	patientToken, err := utils.GenerateAccessToken(7, models.RolePatient)
	require.NoError(t, err)
	doctorToken, err := utils.GenerateAccessToken(8, models.RoleDoctor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
	req.Header.Set("Authorization", "Bearer "+doctorToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActorFromContextMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	actor, ok := ActorFromContext(c)
	assert.False(t, ok)
	assert.Equal(t, services.Actor{}, actor)
}
