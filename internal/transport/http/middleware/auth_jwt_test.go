package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autohub-api/internal/core/auth"
)

func newAuthRouter(j *auth.JWTer, requireRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthJWT(j, requireRole), func(c *gin.Context) {
		uid, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": uid, "role": c.GetString(KeyRole)})
	})
	return r
}

func doGet(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWT_MissingToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "i", TTL: time.Hour}
	r := newAuthRouter(j, "")

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer not-a-jwt").Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "i", TTL: time.Hour}
	r := newAuthRouter(j, "")

	tok, err := j.Issue(9, "x@y.com", "user")
	require.NoError(t, err)

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":9`)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestAuthJWT_RoleGate(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "i", TTL: time.Hour}
	r := newAuthRouter(j, "admin")

	userTok, err := j.Issue(1, "u@y.com", "user")
	require.NoError(t, err)
	adminTok, err := j.Issue(2, "a@y.com", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+userTok).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminTok).Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "i", TTL: -5 * time.Minute}
	r := newAuthRouter(j, "")

	tok, err := j.Issue(1, "x@y.com", "user")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+tok).Code)
}
