package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(a), func(ctx *gin.Context) {
		identity, _ := CurrentIdentity(ctx)
		ctx.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	r.GET("/admin", RequireAuth(a), RequireAdmin(a), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	a, err := NewJWTAuthenticator("jwt-secret")
	require.NoError(t, err)
	other, err := NewJWTAuthenticator("another-secret")
	require.NoError(t, err)
	r := newProtectedRouter(a)

	valid, err := a.Issue(Identity{Subject: "1", Email: "ops@example.com", Role: "staff"}, time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue(Identity{Subject: "1", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := a.Issue(Identity{Subject: "1"}, -time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/me", forged).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/me", expired).Code)

	w := doRequest(r, "/me", valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"ops@example.com"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	a, err := NewJWTAuthenticator("jwt-secret")
	require.NoError(t, err)
	r := newProtectedRouter(a)

	staff, err := a.Issue(Identity{Subject: "2", Role: "staff"}, time.Hour)
	require.NoError(t, err)
	admin, err := a.Issue(Identity{Subject: "3", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", staff).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, "/admin", admin).Code)
}

func TestNewJWTAuthenticatorNeedsSecret(t *testing.T) {
	_, err := NewJWTAuthenticator("")
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := doRequest(r, "/", "")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}
