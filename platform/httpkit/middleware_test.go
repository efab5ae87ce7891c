package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lead_qualification_backend/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type testJWTConfig struct{ secret string }

func (c testJWTConfig) GetJWTAccessSecret() string { return c.secret }

func newTestEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware...)
	engine.GET("/whoami", func(c *gin.Context) {
		actor := ActorID(c)
		if actor == nil {
			OK(c, gin.H{"user": ""})
			return
		}
		OK(c, gin.H{"user": actor.String()})
	})
	return engine
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	engine := newTestEngine(AuthRequired(testJWTConfig{secret: "s3cret"}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "s3cret", jwt.MapClaims{
		"sub":  userID.String(),
		"type": "access",
		"exp":  time.Now().Add(time.Minute).Unix(),
	}))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	engine := newTestEngine(AuthRequired(testJWTConfig{secret: "s3cret"}))

	cases := map[string]string{
		"missing":     "",
		"wrong key":   "Bearer " + signToken(t, "other", jwt.MapClaims{"sub": uuid.NewString(), "type": "access"}),
		"wrong type":  "Bearer " + signToken(t, "s3cret", jwt.MapClaims{"sub": uuid.NewString(), "type": "refresh"}),
		"bad subject": "Bearer " + signToken(t, "s3cret", jwt.MapClaims{"sub": "nope", "type": "access"}),
	}

	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "token") {
			t.Fatalf("%s: expected token error body, got %s", name, rec.Body.String())
		}
	}
}

func TestAuthRequiredDisabledWithoutSecret(t *testing.T) {
	engine := newTestEngine(AuthRequired(testJWTConfig{}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous access, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 1, nil)
	engine := newTestEngine(limiter.RateLimit())

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %d then %d", first.Code, second.Code)
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	engine := newTestEngine(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderRequestID, "abc")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Header().Get(HeaderRequestID) != "abc" {
		t.Fatalf("expected request id to be echoed, got %q", rec.Header().Get(HeaderRequestID))
	}
}

func TestHandleErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleError(c, apperr.NotFound("lead not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
