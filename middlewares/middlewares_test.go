package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/database"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuth(t *testing.T) *services.AuthService {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return services.NewAuthService(db, repository.NewUserRepository(db), utils.NewTokenIssuer("mw-secret", time.Hour))
}

func protectedRouter(auth *services.AuthService, role models.Role) *gin.Engine {
	r := gin.New()
	r.GET("/me", Authenticate(auth), func(c *gin.Context) {
		id, _ := utils.CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "role": id.Role})
	})
	r.GET("/admin", Authenticate(auth), RequireRole(role), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMiddleware(t *testing.T) {
	auth := setupAuth(t)
	res, err := auth.Register(context.Background(), "admin", "admin@example.com", "pw")
	require.NoError(t, err)
	r := protectedRouter(auth, models.RoleAdmin)

	w := get(r, "/me", res.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	w = get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")

	w = get(r, "/me", "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token "+res.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleMiddleware(t *testing.T) {
	auth := setupAuth(t)
	ctx := context.Background()
	admin, err := auth.Register(ctx, "admin", "admin@example.com", "pw")
	require.NoError(t, err)
	customer, err := auth.Register(ctx, "eve", "eve@example.com", "pw")
	require.NoError(t, err)
	r := protectedRouter(auth, models.RoleAdmin)

	assert.Equal(t, http.StatusNoContent, get(r, "/admin", admin.Token).Code)

	w := get(r, "/admin", customer.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden: Requires admin privileges")

	bare := gin.New()
	bare.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusUnauthorized, get(bare, "/admin", "").Code)
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	now := time.Now()

	assert.True(t, rl.allow("10.0.0.1", now))
	assert.True(t, rl.allow("10.0.0.1", now))
	assert.False(t, rl.allow("10.0.0.1", now))
	assert.True(t, rl.allow("10.0.0.2", now))

	// Idle visitors are forgotten and start with a full bucket.
	later := now.Add(rl.ttl + time.Minute)
	assert.True(t, rl.allow("10.0.0.2", later))
	assert.True(t, rl.allow("10.0.0.1", later))
}

func TestRateLimitMiddlewareResponds429(t *testing.T) {
	r := gin.New()
	r.Use(NewStrictRateLimiter(1).RateLimit())
	r.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/login", "").Code)
	w := get(r, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, utils.CurrentRequestID(c)) })

	w := get(r, "/", "")
	minted := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
	assert.Equal(t, minted, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
