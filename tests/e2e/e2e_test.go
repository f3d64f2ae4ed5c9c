//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// External collaborators (geocoding, weather, advisory) are NOT exercised
// here — these flows cover auth, supplier/compliance CRUD, metric
// aggregation and the synchronous report download.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sankalp-nadiger/Auditryx/internal/config"
	"github.com/sankalp-nadiger/Auditryx/internal/infra"
	"github.com/sankalp-nadiger/Auditryx/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("auditryx_test"),
		tcPostgres.WithUsername("auditryx"),
		tcPostgres.WithPassword("auditryx"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		ReportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	advisoryCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, advisoryCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Register + login a fresh account
	registerResp := do(t, srv, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{"email": "buyer@e2e.test", "password": "e2e-password"}), "")
	require.Equal(t, http.StatusCreated, registerResp.StatusCode)
	registerResp.Body.Close()

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "buyer@e2e.test", "password": "e2e-password"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createSupplier(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/suppliers",
		jsonBody(t, map[string]any{
			"name":           name,
			"country":        "Germany",
			"contract_terms": map[string]string{"payment": "net 30"},
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sup struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &sup)
	return sup.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_SupplierCRUD(t *testing.T) {
	env := setupTestEnv(t)

	id := createSupplier(t, env, "Acme GmbH")

	// Read back
	getResp := do(t, env.server, "GET", "/v1/suppliers/"+id, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var sup struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	}
	decodeJSON(t, getResp, &sup)
	assert.Equal(t, "Acme GmbH", sup.Name)

	// Partial update
	updResp := do(t, env.server, "PUT", "/v1/suppliers/"+id,
		jsonBody(t, map[string]any{"risk_level": "high"}), env.token)
	require.Equal(t, http.StatusOK, updResp.StatusCode)
	var updated struct {
		Name      string  `json:"name"`
		RiskLevel *string `json:"risk_level"`
	}
	decodeJSON(t, updResp, &updated)
	assert.Equal(t, "Acme GmbH", updated.Name)
	require.NotNil(t, updated.RiskLevel)
	assert.Equal(t, "high", *updated.RiskLevel)

	// Delete
	delResp := do(t, env.server, "DELETE", "/v1/suppliers/"+id, nil, env.token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	goneResp := do(t, env.server, "GET", "/v1/suppliers/"+id, nil, env.token)
	assert.Equal(t, http.StatusNotFound, goneResp.StatusCode)
	goneResp.Body.Close()
}

func TestE2E_AuthRequired(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/suppliers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_ComplianceAndMetrics(t *testing.T) {
	env := setupTestEnv(t)
	id := createSupplier(t, env, "Metrics Co")

	for _, rec := range []map[string]any{
		{"metric": "quality", "date_recorded": "2026-01-10", "result": 7.0, "status": "pass"},
		{"metric": "quality", "date_recorded": "2026-01-20", "result": 8.5, "status": "pass"},
		{"metric": "audit", "date_recorded": "2026-02-05", "status": "pass"}, // no result
	} {
		rec["supplier_id"] = id
		resp := do(t, env.server, "POST", "/v1/compliance", jsonBody(t, rec), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	metricsResp := do(t, env.server, "GET", fmt.Sprintf("/v1/suppliers/%s/metrics?range=ALL", id), nil, env.token)
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)
	var metrics struct {
		Chart []struct {
			Month string   `json:"month"`
			Avg   *float64 `json:"avg"`
		} `json:"chart"`
		Table []struct {
			Metric string `json:"metric"`
			Date   string `json:"date"`
		} `json:"table"`
	}
	decodeJSON(t, metricsResp, &metrics)

	require.Len(t, metrics.Chart, 2)
	assert.Equal(t, "2026-01", metrics.Chart[0].Month)
	require.NotNil(t, metrics.Chart[0].Avg)
	assert.Equal(t, 7.8, *metrics.Chart[0].Avg) // (7.0+8.5)/2 rounded
	assert.Nil(t, metrics.Chart[1].Avg)         // result-less month

	require.Len(t, metrics.Table, 3)
	assert.Equal(t, "2026-02-05", metrics.Table[0].Date) // newest first

	// Unknown range value
	badResp := do(t, env.server, "GET", fmt.Sprintf("/v1/suppliers/%s/metrics?range=3M", id), nil, env.token)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
	badResp.Body.Close()
}

func TestE2E_ReportDownload(t *testing.T) {
	env := setupTestEnv(t)
	id := createSupplier(t, env, "Report Co")

	rec := map[string]any{
		"supplier_id":   id,
		"metric":        "delivery_time",
		"date_recorded": "2026-03-01",
		"result":        9.0,
		"status":        "pass",
	}
	crResp := do(t, env.server, "POST", "/v1/compliance", jsonBody(t, rec), env.token)
	require.Equal(t, http.StatusCreated, crResp.StatusCode)
	crResp.Body.Close()

	repResp := do(t, env.server, "GET", fmt.Sprintf("/v1/suppliers/%s/report", id), nil, env.token)
	require.Equal(t, http.StatusOK, repResp.StatusCode)
	defer repResp.Body.Close()

	buf := make([]byte, 5)
	_, err := repResp.Body.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(buf)) // PDF magic bytes
}
