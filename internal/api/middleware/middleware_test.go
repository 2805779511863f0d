package middleware

import (
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/logger"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/security"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mws ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mws...)
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetUint64(consts.UserIDKey),
			"trace_id": logger.TraceID(c.Request.Context()),
		})
	})
	return r
}

func do(r http.Handler, token string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newBlacklist(t *testing.T) *redis.TokenBlacklist {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewTokenBlacklist(rdb)
}

func TestAuthOptionalMiddleware(t *testing.T) {
	tm := security.NewTokenManager("secret", "Agora")
	blacklist := newBlacklist(t)
	r := newEngine(AuthOptionalMiddleware(tm, blacklist))
	token, err := tm.GenerateToken(42, nil)
	require.NoError(t, err)

	w := do(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)

	w = do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	w = do(r, "not-a-jwt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))
	w = do(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`, "revoked token is treated as anonymous")
}

func TestAuthMiddleware(t *testing.T) {
	tm := security.NewTokenManager("secret", "Agora")
	blacklist := newBlacklist(t)
	r := newEngine(AuthMiddleware(tm, blacklist))

	token, err := tm.GenerateToken(42, []string{"USER"})
	require.NoError(t, err)

	w := do(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	other, err := security.NewTokenManager("other", "Agora").GenerateToken(42, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, other).Code)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, do(r, token).Code)
}

func TestCheckRoles(t *testing.T) {
	tm := security.NewTokenManager("secret", "Agora")
	r := newEngine(AuthMiddleware(tm, newBlacklist(t)), CheckRoles("ADMIN"))

	admin, err := tm.GenerateToken(1, []string{"USER", "ADMIN"})
	require.NoError(t, err)
	user, err := tm.GenerateToken(2, []string{"USER"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, admin).Code)
	assert.Equal(t, http.StatusForbidden, do(r, user).Code)
}

func TestTraceMiddleware(t *testing.T) {
	r := newEngine(TraceMiddleware())

	w := do(r, "", TraceHeader, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(TraceHeader))
	assert.Contains(t, w.Body.String(), `"trace_id":"abc-123"`)

	w = do(r, "")
	generated := w.Header().Get(TraceHeader)
	assert.Len(t, generated, 36)
	assert.Contains(t, w.Body.String(), generated)
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware())
	r.OPTIONS("/whoami", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	req.Header.Set("Origin", "https://agora.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://agora.example", w.Header().Get("Access-Control-Allow-Origin"))
}
