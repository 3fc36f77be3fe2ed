package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object in response")
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		configuredKey string
		requestKey    string
		wantStatus    int
	}{
		{"valid_api_key", "secret-metrics-key", "secret-metrics-key", http.StatusOK},
		{"invalid_api_key", "secret-metrics-key", "wrong-key", http.StatusUnauthorized},
		{"missing_api_key", "secret-metrics-key", "", http.StatusUnauthorized},
		{"partial_match_rejected", "secret-metrics-key", "secret-metrics", http.StatusUnauthorized},
		{"open_when_unconfigured", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(APIKeyMiddleware(tt.configuredKey))
			r.GET("/test", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

			headers := map[string]string{}
			if tt.requestKey != "" {
				headers["X-API-Key"] = tt.requestKey
			}
			rec := doRequest(r, http.MethodGet, "/test", headers)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized && errorCode(t, rec) != "INVALID_API_KEY" {
				t.Errorf("expected INVALID_API_KEY error code")
			}
		})
	}
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey), "email": c.GetString(EmailKey)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{Base: models.Base{ID: "0190f1a2-0000-7000-8000-000000000001"}, Email: "auth@example.com"}

	access, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign access token: %v", err)
	}
	refresh, err := GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("failed to sign refresh token: %v", err)
	}

	t.Run("valid_access_token", func(t *testing.T) {
		rec := doRequest(setupAuthRouter(), http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + access})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseBody(t, rec)
		if body["user_id"] != user.ID || body["email"] != user.Email {
			t.Errorf("unexpected context values: %v", body)
		}
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing_header", ""},
		{"wrong_scheme", "Token " + access},
		{"garbage_token", "Bearer not-a-jwt"},
		{"refresh_token_rejected", "Bearer " + refresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			rec := doRequest(setupAuthRouter(), http.MethodGet, "/me", headers)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if code := errorCode(t, rec); code != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED, got %s", code)
			}
		})
	}

	t.Run("expired_token", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:    user.ID,
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTKey())
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		rec := doRequest(setupAuthRouter(), http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + expired})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	user := &models.User{Base: models.Base{ID: "0190f1a2-0000-7000-8000-000000000002"}, Email: "refresh@example.com"}

	refresh, _ := GenerateRefreshToken(user)
	claims, err := ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("expected refresh token to validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, claims.UserID)
	}

	access, _ := GenerateAccessToken(user)
	if _, err := ValidateRefreshToken(access); err == nil {
		t.Error("access token must not validate as a refresh token")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashToken("token-b") || a != HashToken("token-a") {
		t.Error("hash must be deterministic and distinguish inputs")
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(requestid.New(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.Wrap(apperrors.ErrBudgetNotFound, errors.New("db says no")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	rec := doRequest(r, http.MethodGet, "/app", nil)
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "BUDGET_NOT_FOUND" {
		t.Errorf("expected 404 BUDGET_NOT_FOUND, got %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "db says no") {
		t.Error("internal error text leaked to client")
	}

	rec = doRequest(r, http.MethodGet, "/plain", nil)
	if rec.Code != http.StatusInternalServerError || errorCode(t, rec) != "INTERNAL_ERROR" {
		t.Errorf("expected 500 INTERNAL_ERROR, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/budgets/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", MetricsHandler())

	doRequest(r, http.MethodGet, "/budgets/0190f1a2-0000-7000-8000-000000000003", nil)

	rec := doRequest(r, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `fintrack_requests_total{code="204",method="GET",url="/budgets/:id"}`) {
		t.Errorf("expected request counter labelled with the route pattern, got:\n%s", body)
	}
	if strings.Contains(body, "0190f1a2-0000-7000-8000-000000000003") {
		t.Error("raw path parameters must not appear in labels")
	}
}
