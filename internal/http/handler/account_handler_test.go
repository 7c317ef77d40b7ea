package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/brokerz/brokerz-auth/internal/bootstrap"
	"github.com/brokerz/brokerz-auth/internal/config"
	"github.com/brokerz/brokerz-auth/internal/domain"
	httptransport "github.com/brokerz/brokerz-auth/internal/http"
	httpHandler "github.com/brokerz/brokerz-auth/internal/http/handler"
	httpmiddleware "github.com/brokerz/brokerz-auth/internal/http/middleware"
	"github.com/brokerz/brokerz-auth/internal/jwt"
	"github.com/brokerz/brokerz-auth/internal/repository"
	"github.com/brokerz/brokerz-auth/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *jwt.Generator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, bootstrap.Migrate(context.Background(), db))

	cfg := config.Config{
		HTTPPort:           "3000",
		JWTSecret:          "test-secret",
		TokenTTL:           7 * 24 * time.Hour,
		ServiceName:        "brokerz-auth-test",
		CORSAllowedOrigins: []string{"*"},
	}

	generator := jwt.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)
	accounts := service.NewAccountService(repository.NewSQLiteUserRepo(db), generator, zap.NewNop())
	router := httptransport.NewRouter(cfg, httpHandler.NewAccountHandler(accounts), &httpmiddleware.Auth{Tokens: generator})
	return router, generator
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const signupBody = `{
	"firstName": "Ana",
	"lastName": "Lee",
	"email": " Ana@Ex.com ",
	"password": "secret1",
	"confirmPassword": "secret1",
	"portal": "client"
}`

func TestSignupEndpoint(t *testing.T) {
	router, generator := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp service.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "ana@ex.com", resp.User.Email)
	require.Equal(t, "client", resp.User.Portal)

	claims, err := generator.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
}

func TestSignupValidationAndConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/signup", `{"firstName": "Ana"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "required")

	short := strings.Replace(signupBody, `"secret1"`, `"abc"`, 2)
	w = doJSON(t, router, http.MethodPost, "/api/signup", short, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "at least 6 characters")

	w = doJSON(t, router, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "EMAIL_EXISTS")

	// Same email registers cleanly under the other portal.
	broker := strings.Replace(signupBody, `"client"`, `"broker"`, 1)
	w = doJSON(t, router, http.MethodPost, "/api/signup", broker, "")
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/login",
		`{"email": "ANA@EX.COM", "password": "secret1", "portal": "client"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp service.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	wrongPassword := doJSON(t, router, http.MethodPost, "/api/login",
		`{"email": "ana@ex.com", "password": "wrong-password", "portal": "client"}`, "")
	unknownEmail := doJSON(t, router, http.MethodPost, "/api/login",
		`{"email": "ghost@ex.com", "password": "secret1", "portal": "client"}`, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestMeEndpoint(t *testing.T) {
	router, generator := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var signup service.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))

	w = doJSON(t, router, http.MethodGet, "/api/me", "", signup.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var profile service.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, signup.User, profile.UserViewModel)

	// No token and an unverifiable token both read as anonymous.
	w = doJSON(t, router, http.MethodGet, "/api/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Not signed in.")

	w = doJSON(t, router, http.MethodGet, "/api/me", "", "garbage-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Not signed in.")

	// A valid token whose subject no longer exists in the store.
	ghost, err := generator.Issue(domain.User{ID: signup.User.ID + 1000, Email: "ghost@ex.com", Portal: domain.PortalClient})
	require.NoError(t, err)
	w = doJSON(t, router, http.MethodGet, "/api/me", "", ghost)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "User not found.")
}
