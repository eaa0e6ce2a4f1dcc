package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/nutrisaur/backend/internal/mocks"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := new(mocks.MockAuthService)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Username: "maria"}, nil)
	validator.On("ValidateToken", "old").Return(nil, service.ErrTokenExpired)
	validator.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)

	router := gin.New()
	router.Use(AuthMiddleware(validator))
	router.GET("/me", func(c *gin.Context) {
		id, ok := UserID(c)
		assert.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, userID.String()},
		{"lower-case scheme", "bearer good", http.StatusOK, userID.String()},
		{"missing", "", http.StatusUnauthorized, `{"error":"missing authorization header"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"error":"invalid authorization header format"}`},
		{"expired", "Bearer old", http.StatusUnauthorized, `{"error":"token has expired"}`},
		{"invalid", "Bearer bad", http.StatusUnauthorized, `{"error":"invalid token"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestRequireUsername(t *testing.T) {
	validator := new(mocks.MockAuthService)
	validator.On("ValidateToken", "admin").Return(&types.TokenClaims{UserID: uuid.New(), Username: "Maria"}, nil)
	validator.On("ValidateToken", "user").Return(&types.TokenClaims{UserID: uuid.New(), Username: "jun"}, nil)

	router := gin.New()
	router.POST("/import", AuthMiddleware(validator), RequireUsername([]string{" maria "}), func(c *gin.Context) {
		c.String(http.StatusOK, Username(c))
	})

	for token, status := range map[string]int{"admin": http.StatusOK, "user": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodPost, "/import", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, token)
	}
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
		_ = c.Error(errors.New("Test error"))
	})
	router.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("ignored"))
		c.JSON(http.StatusConflict, gin.H{"error": "already handled"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Test error"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/handled", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"already handled"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	limiter := NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: 1, KeyPrefix: "test"}, zerolog.Nop())

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	router.Use(limiter.RateLimitMiddleware())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimitRequiresUser(t *testing.T) {
	limiter := NewRateLimiter(nil, RateLimitConfig{Window: time.Minute, Limit: 1}, zerolog.Nop())
	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
