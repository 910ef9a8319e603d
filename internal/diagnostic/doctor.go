package diagnostic

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingCredential is returned before any probe runs when no key is set.
var ErrMissingCredential = errors.New("missing credential")

// Step describes one stage of a run for display.
type Step struct {
	Name  string
	Title string
	Label string
}

// Steps is the fixed execution order.
var Steps = []Step{
	{Name: ProbeKeyFormat, Title: "Checking API key format...", Label: "Key Format"},
	{Name: ProbeConnectivity, Title: "Testing API connectivity...", Label: "Connectivity"},
	{Name: ProbeQuota, Title: "Testing content generation (quota check)...", Label: "Content Gen"},
}

// Progress observes a run as it happens. index is 1-based.
type Progress interface {
	StepStarted(step Step, index, total int)
	StepFinished(step Step, index, total int, res ProbeResult)
}

type DoctorConfig struct {
	Prober Prober
	Model  string
	Logger *zap.SugaredLogger
}

// Doctor runs every probe in order and aggregates the results.
type Doctor struct {
	prober Prober
	model  string
	logger *zap.SugaredLogger

	now      func() time.Time
	newRunID func() string
}

func NewDoctor(cfg DoctorConfig) *Doctor {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Doctor{
		prober:   cfg.Prober,
		model:    cfg.Model,
		logger:   logger,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Run executes all steps regardless of earlier failures. progress may be nil.
func (d *Doctor) Run(ctx context.Context, key string, progress Progress) (Report, error) {
	if key == "" {
		d.logger.Errorw("diagnostic_aborted", "reason", ErrMissingCredential.Error())
		return Report{}, ErrMissingCredential
	}

	report := Report{
		RunID:     d.newRunID(),
		Model:     d.model,
		StartedAt: d.now().UTC(),
		Results:   make([]ProbeResult, 0, len(Steps)),
	}
	d.logger.Infow("diagnostic_started", "run_id", report.RunID, "model", report.Model)

	for i, step := range Steps {
		if progress != nil {
			progress.StepStarted(step, i+1, len(Steps))
		}

		res := d.runStep(ctx, step, key)
		report.Results = append(report.Results, res)

		if progress != nil {
			progress.StepFinished(step, i+1, len(Steps), res)
		}
	}

	d.logger.Infow(
		"diagnostic_finished",
		"run_id", report.RunID,
		"passed", report.Passed(),
		"failures", len(report.Failures()),
	)
	return report, nil
}

func (d *Doctor) runStep(ctx context.Context, step Step, key string) ProbeResult {
	switch step.Name {
	case ProbeKeyFormat:
		return CheckKeyFormat(key)
	case ProbeConnectivity:
		return d.prober.Connectivity(ctx, key)
	case ProbeQuota:
		return d.prober.Quota(ctx, key)
	default:
		return failed(step.Name, StatusUnexpectedError, "❌ UNEXPECTED ERROR: unknown step "+step.Name)
	}
}
