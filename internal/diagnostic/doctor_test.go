package diagnostic

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	connectivity ProbeResult
	quota        ProbeResult
	calls        []string
}

func (f *fakeProber) Connectivity(_ context.Context, _ string) ProbeResult {
	f.calls = append(f.calls, ProbeConnectivity)
	return f.connectivity
}

func (f *fakeProber) Quota(_ context.Context, _ string) ProbeResult {
	f.calls = append(f.calls, ProbeQuota)
	return f.quota
}

type recordingProgress struct {
	events []string
}

func (p *recordingProgress) StepStarted(step Step, index, total int) {
	p.events = append(p.events, "start:"+step.Name)
}

func (p *recordingProgress) StepFinished(step Step, index, total int, res ProbeResult) {
	p.events = append(p.events, "done:"+step.Name)
}

const validKey = "AIzaSyValidValidValidValid01"

func newTestDoctor(p Prober) *Doctor {
	d := NewDoctor(DoctorConfig{Prober: p, Model: "gemini-2.5-flash"})
	d.newRunID = func() string { return "run-1" }
	d.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return d
}

func TestDoctorRun_MissingCredential(t *testing.T) {
	t.Parallel()

	p := &fakeProber{}
	progress := &recordingProgress{}

	report, err := newTestDoctor(p).Run(context.Background(), "", progress)
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Empty(t, report.Results)
	assert.Empty(t, p.calls)
	assert.Empty(t, progress.events)
}

func TestDoctorRun_AllPass(t *testing.T) {
	t.Parallel()

	p := &fakeProber{
		connectivity: passed(ProbeConnectivity, "ok"),
		quota:        passed(ProbeQuota, "ok"),
	}
	progress := &recordingProgress{}

	report, err := newTestDoctor(p).Run(context.Background(), validKey, progress)
	require.NoError(t, err)

	assert.True(t, report.Passed())
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "gemini-2.5-flash", report.Model)
	assert.Equal(t, []string{ProbeKeyFormat, ProbeConnectivity, ProbeQuota}, names(report))
	assert.Equal(t, []string{
		"start:key_format", "done:key_format",
		"start:connectivity", "done:connectivity",
		"start:quota", "done:quota",
	}, progress.events)
}

func TestDoctorRun_OneFailureFailsRun(t *testing.T) {
	t.Parallel()

	p := &fakeProber{
		connectivity: failed(ProbeConnectivity, StatusAuthFailure, "❌ AUTHENTICATION FAILED"),
		quota:        passed(ProbeQuota, "ok"),
	}

	report, err := newTestDoctor(p).Run(context.Background(), validKey, nil)
	require.NoError(t, err)

	assert.False(t, report.Passed())
	require.Len(t, report.Failures(), 1)
	assert.Equal(t, ProbeConnectivity, report.Failures()[0].Name)
	assert.Equal(t, []string{ProbeConnectivity, ProbeQuota}, p.calls)
}

func TestDoctorRun_FormatWarningDoesNotStopProbes(t *testing.T) {
	t.Parallel()

	p := &fakeProber{
		connectivity: passed(ProbeConnectivity, "ok"),
		quota:        passed(ProbeQuota, "ok"),
	}

	report, err := newTestDoctor(p).Run(context.Background(), "short", nil)
	require.NoError(t, err)

	res, ok := report.Result(ProbeKeyFormat)
	require.True(t, ok)
	assert.Equal(t, StatusInvalidKey, res.Status)
	assert.Equal(t, []string{ProbeConnectivity, ProbeQuota}, p.calls)
	assert.False(t, report.Passed())
}

func TestReport_MarshalJSON(t *testing.T) {
	t.Parallel()

	report := Report{
		RunID: "run-1",
		Model: "m",
		Results: []ProbeResult{
			passed(ProbeKeyFormat, "ok"),
			failed(ProbeQuota, StatusQuotaExceeded, "⚠️  QUOTA EXCEEDED: x"),
		},
	}

	b, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, false, decoded["passed"])
	assert.Equal(t, "run-1", decoded["run_id"])

	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)
	assert.Equal(t, "quota_exceeded", results[1].(map[string]any)["status"])
	assert.Equal(t, true, results[1].(map[string]any)["advisory"])
	assert.Equal(t, false, results[0].(map[string]any)["advisory"])
}

func TestReport_EmptyHasNotPassed(t *testing.T) {
	t.Parallel()

	assert.False(t, Report{}.Passed())
	_, ok := Report{}.Result(ProbeQuota)
	assert.False(t, ok)
}

func TestStatusAdvisory(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusRateLimited.Advisory())
	assert.False(t, StatusAuthFailure.Advisory())
	assert.False(t, StatusTimeout.Advisory())

	assert.True(t, failed(ProbeQuota, StatusQuotaExceeded, "x").Advisory)
	assert.False(t, failed(ProbeQuota, StatusAuthFailure, "x").Advisory)
	assert.False(t, passed(ProbeQuota, "x").Advisory)
}

func names(r Report) []string {
	out := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.Name)
	}
	return out
}
