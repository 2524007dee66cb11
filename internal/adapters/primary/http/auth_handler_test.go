package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	mw "github.com/drishti/command-center-backend/internal/adapters/primary/http/middleware"
	pgadapter "github.com/drishti/command-center-backend/internal/adapters/secondary/postgres"
	"github.com/drishti/command-center-backend/internal/auth"
	"github.com/drishti/command-center-backend/internal/core/services"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		pgcontainer.WithDatabase("test-db"),
		pgcontainer.WithUsername("user"),
		pgcontainer.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("could not get connection string: %v", err)
	}

	migrationsPath, err := filepath.Abs("../../../../migrations")
	if err != nil {
		log.Fatalf("could not find migrations directory: %v", err)
	}

	migrationURL := "file://" + migrationsPath
	mig, err := migrate.New(migrationURL, connStr)
	if err != nil {
		log.Fatalf("could not create migrate instance: %v", err)
	}
	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("could not run migrations: %v", err)
	}

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("could not create connection pool: %v", err)
	}

	code := m.Run()

	testPool.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Fatalf("could not terminate postgres container: %v", err)
	}

	os.Exit(code)
}

func newAuthRouter() (*chi.Mux, *auth.TokenManager) {
	userRepo := pgadapter.NewUserRepository(testPool)
	authService := services.NewAuthService(userRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := NewErrorHandler(logger)
	tokenManager := auth.NewTokenManager("test-secret")
	authHandler := NewAuthHandler(authService, tokenManager, errorHandler, logger)

	router := chi.NewRouter()
	router.Route("/auth", authHandler.RegisterRoutes)

	return router, tokenManager
}

func TestRegisterThenLogin(t *testing.T) {
	router, tokenManager := newAuthRouter()

	email := uuid.NewString() + "@example.com"
	registerBody, _ := json.Marshal(RegisterRequest{
		FullName: "Ops Operator",
		Email:    email,
		Password: "Password1",
		Role:     "admin",
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusCreated, recorder.Code, recorder.Body.String())

	var registered TokenResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&registered))
	require.NotEmpty(t, registered.Token)
	assert.Equal(t, email, registered.User.Email)

	claims, err := tokenManager.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	loginBody, _ := json.Marshal(LoginRequest{Email: email, Password: "Password1"})
	req = httptest.NewRequest(stdhttp.MethodPost, "/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code, recorder.Body.String())

	var loggedIn TokenResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&loggedIn))
	assert.NotEmpty(t, loggedIn.Token)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newAuthRouter()

	email := uuid.NewString() + "@example.com"
	body, _ := json.Marshal(RegisterRequest{
		FullName: "First",
		Email:    email,
		Password: "Password1",
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, stdhttp.StatusCreated, recorder.Code)

	req = httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(body))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, stdhttp.StatusConflict, recorder.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newAuthRouter()

	email := uuid.NewString() + "@example.com"
	registerBody, _ := json.Marshal(RegisterRequest{
		FullName: "Someone",
		Email:    email,
		Password: "Password1",
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(registerBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, stdhttp.StatusCreated, recorder.Code)

	loginBody, _ := json.Marshal(LoginRequest{Email: email, Password: "wrong-password"})
	req = httptest.NewRequest(stdhttp.MethodPost, "/auth/login", bytes.NewReader(loginBody))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnauthorized, recorder.Code)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	tokenManager := auth.NewTokenManager("test-secret")

	router := chi.NewRouter()
	router.Use(mw.JWTMiddleware(tokenManager))
	router.Get("/ping", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		WriteSuccess(w, "pong")
	})

	req := httptest.NewRequest(stdhttp.MethodGet, "/ping", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnauthorized, recorder.Code)
}
