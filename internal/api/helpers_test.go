package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"sehatsaathi/backend/internal/analysis"
	"sehatsaathi/backend/internal/migrations"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) GenerateWithFile(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	return s.text, s.err
}

type testEnv struct {
	handler *Handler
	router  http.Handler
	db      *sqlx.DB
	gen     *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	migrations.Run(db)

	gen := &stubGenerator{text: `{"possibleConditions":[{"name":"Viral Fever","severity":"medium"}],"urgencyLevel":"medium"}`}
	analyzer := analysis.NewService(gen, time.Second, zerolog.Nop())
	handler := New(db, "test_secret", analyzer, zerolog.Nop())

	return &testEnv{handler: handler, router: handler.Router(), db: db, gen: gen}
}

// request performs an HTTP call against the router and decodes the JSON body.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

// registerUser creates an account via the API and returns its token and id.
func (e *testEnv) registerUser(t *testing.T, role string) (token, userID string) {
	t.Helper()

	status, body := e.request(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username":     role + " tester",
		"email":        fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		"password":     "s3cret-pass",
		"role":         role,
		"pharmacyName": "Test Pharmacy", // ignored for non-pharmacists
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", role, body)

	token = body["token"].(string)
	user := body["user"].(map[string]any)
	return token, user["id"].(string)
}

// seedPharmacy inserts a pharmacy row directly and returns its id.
func (e *testEnv) seedPharmacy(t *testing.T, name, location string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := e.db.Exec(`INSERT INTO pharmacies (id, name, location, created_at) VALUES (?, ?, ?, ?)`,
		id, name, location, time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)
	return id
}

// addMedicine creates a medicine record through the API and returns it.
func (e *testEnv) addMedicine(t *testing.T, pharmacyID string, name string, quantity int64) map[string]any {
	t.Helper()

	status, body := e.request(t, http.MethodPost, "/medicines/add", "", map[string]any{
		"name":        name,
		"category":    "Pain Relief",
		"quantity":    quantity,
		"price":       2.5,
		"expiryDate":  "2026-06-15",
		"supplier":    "Sun Pharma",
		"batchNumber": "B1",
		"pharmacyId":  pharmacyID,
	})
	require.Equal(t, http.StatusCreated, status, "add medicine: %v", body)
	return body["medicine"].(map[string]any)
}
