//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres"
	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres/collection"
	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres/item"
	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/ableukhov/linguadeck-backend/internal/auth"
	"github.com/ableukhov/linguadeck-backend/internal/config"
	"github.com/ableukhov/linguadeck-backend/internal/service/assessment"
	"github.com/ableukhov/linguadeck-backend/internal/service/library"
	"github.com/ableukhov/linguadeck-backend/internal/service/review"
	"github.com/ableukhov/linguadeck-backend/internal/transport/middleware"
	"github.com/ableukhov/linguadeck-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	itemRepo := item.New(pool)
	collectionRepo := collection.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	jwtMgr := authpkg.NewJWTManager(
		"test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	// 5. Services.
	reviewSvc := review.NewService(logger, itemRepo, collectionRepo, review.DefaultConfig())
	librarySvc := library.NewService(logger, itemRepo, collectionRepo, txm)
	assessmentSvc := assessment.NewService(logger)

	// 6. Handlers.
	sessionHandler := rest.NewSessionHandler(reviewSvc, logger)
	collectionHandler := rest.NewCollectionHandler(librarySvc, reviewSvc, logger)
	itemHandler := rest.NewItemHandler(librarySvc, logger)
	assessmentHandler := rest.NewAssessmentHandler(assessmentSvc, logger)
	healthHandler := rest.NewHealthHandler(pool, "test-version")

	// 7. Middleware chain.
	api := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr),
	)

	// 8. Mux.
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("GET /v1/sessions/start", api(http.HandlerFunc(sessionHandler.Start)))
	mux.Handle("POST /v1/sessions/{id}/outcomes", api(http.HandlerFunc(sessionHandler.RecordOutcome)))
	mux.Handle("GET /v1/sessions/{id}/summary", api(http.HandlerFunc(sessionHandler.Summary)))
	mux.Handle("POST /v1/sessions/{id}/restart", api(http.HandlerFunc(sessionHandler.Restart)))
	mux.Handle("DELETE /v1/sessions/{id}", api(http.HandlerFunc(sessionHandler.Abandon)))

	mux.Handle("POST /v1/collections", api(http.HandlerFunc(collectionHandler.Create)))
	mux.Handle("GET /v1/collections", api(http.HandlerFunc(collectionHandler.List)))
	mux.Handle("DELETE /v1/collections/{id}", api(http.HandlerFunc(collectionHandler.Delete)))
	mux.Handle("GET /v1/collections/{id}/stats", api(http.HandlerFunc(collectionHandler.Stats)))
	mux.Handle("GET /v1/collections/{id}/due", api(http.HandlerFunc(collectionHandler.Due)))
	mux.Handle("POST /v1/collections/{id}/items", api(http.HandlerFunc(itemHandler.Create)))

	mux.Handle("POST /v1/items/{id}/star", api(http.HandlerFunc(itemHandler.ToggleStar)))
	mux.Handle("DELETE /v1/items/{id}", api(http.HandlerFunc(itemHandler.Delete)))

	mux.Handle("POST /v1/assessment/band", api(http.HandlerFunc(assessmentHandler.Band)))

	// 9. httptest server.
	srv := httptest.NewServer(mux)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// doJSON sends a request with an optional JSON body and decodes the JSON
// response into a generic map. A 204 yields a nil map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}

// ---------------------------------------------------------------------------
// createTestUserWithID inserts a user directly into the DB and returns a
// valid JWT access token plus the user's UUID.
// ---------------------------------------------------------------------------

func createTestUserWithID(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	userID := testhelper.SeedUser(t, ts.Pool)

	tok, err := ts.jwt.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return tok, userID
}
