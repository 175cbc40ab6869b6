package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/MrJamesThe3rd/rfm/internal/http"
	"github.com/MrJamesThe3rd/rfm/internal/http/rfm"
	"github.com/MrJamesThe3rd/rfm/internal/importer"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: "analyst"}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func newAPI(authSecret string) http.Handler {
	return apihttp.New(rfm.NewHandler(importer.NewService(), 1), apihttp.Options{
		AuthSecret:  authSecret,
		CORSOrigins: []string{"*"},
	})
}

func TestRequireToken(t *testing.T) {
	type testCase struct {
		name   string
		header func(t *testing.T) string
		status int
	}

	tests := []testCase{
		{
			name:   "no header",
			header: func(*testing.T) string { return "" },
			status: http.StatusUnauthorized,
		},
		{
			name:   "not a bearer token",
			header: func(*testing.T) string { return "Basic YWRtaW46YWRtaW4=" },
			status: http.StatusUnauthorized,
		},
		{
			name: "valid token",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(time.Hour))
			},
			status: http.StatusOK,
		},
		{
			name: "wrong secret",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), time.Now().Add(time.Hour))
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(-time.Hour))
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "no expiry",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), time.Time{})
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "other algorithm",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), time.Now().Add(time.Hour))
			},
			status: http.StatusUnauthorized,
		},
	}

	api := newAPI(secret)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/rfm/segments", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			rec := httptest.NewRecorder()
			api.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouter_OpenWithoutSecret(t *testing.T) {
	rec := httptest.NewRecorder()
	newAPI("").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rfm/segments", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthBypassesAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	newAPI(secret).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rfm/", nil)
	origin := "https://dashboard.example.com"
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newAPI(secret).ServeHTTP(rec, req)

	assert.Contains(t, []string{"*", origin}, rec.Header().Get("Access-Control-Allow-Origin"))
}
