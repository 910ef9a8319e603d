package diagnose

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gemini-keydoctor/config"
	"gemini-keydoctor/internal/diagnostic"
)

type fakeRunner struct {
	report diagnostic.Report
	err    error
	keys   []string
}

func (f *fakeRunner) Run(_ context.Context, key string, _ diagnostic.Progress) (diagnostic.Report, error) {
	f.keys = append(f.keys, key)
	return f.report, f.err
}

func serve(t *testing.T, h *Handler) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoute(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/diagnose", nil))
	return w
}

func report(ok bool) diagnostic.Report {
	return diagnostic.Report{
		RunID: "run-1",
		Results: []diagnostic.ProbeResult{
			{Name: diagnostic.ProbeKeyFormat, Success: true, Status: diagnostic.StatusOK},
			{Name: diagnostic.ProbeConnectivity, Success: ok, Status: diagnostic.StatusOK},
			{Name: diagnostic.ProbeQuota, Success: true, Status: diagnostic.StatusOK},
		},
	}
}

func TestHandle_Passed(t *testing.T) {
	runner := &fakeRunner{report: report(true)}
	h := &Handler{runner: runner, cfg: &config.Config{APIKey: "AIza-key"}, logger: zap.NewNop().Sugar()}

	w := serve(t, h)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"AIza-key"}, runner.keys)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["passed"])
	assert.Equal(t, "run-1", body["run_id"])
}

func TestHandle_FailedProbeIsBadGateway(t *testing.T) {
	h := &Handler{runner: &fakeRunner{report: report(false)}, cfg: &config.Config{APIKey: "k"}, logger: zap.NewNop().Sugar()}

	w := serve(t, h)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandle_MissingCredential(t *testing.T) {
	h := &Handler{runner: &fakeRunner{err: diagnostic.ErrMissingCredential}, cfg: &config.Config{}, logger: zap.NewNop().Sugar()}

	w := serve(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"GEMINI_API_KEY is not configured"}`, w.Body.String())
}

func TestHandle_UnexpectedError(t *testing.T) {
	h := &Handler{runner: &fakeRunner{err: errors.New("boom")}, cfg: &config.Config{APIKey: "k"}, logger: zap.NewNop().Sugar()}

	w := serve(t, h)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
