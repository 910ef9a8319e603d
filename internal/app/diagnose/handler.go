package diagnose

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gemini-keydoctor/config"
	"gemini-keydoctor/internal/diagnostic"
	"gemini-keydoctor/internal/pkg/render"
)

// Runner is the slice of *diagnostic.Doctor the handler needs.
type Runner interface {
	Run(ctx context.Context, key string, progress diagnostic.Progress) (diagnostic.Report, error)
}

type Handler struct {
	runner Runner
	cfg    *config.Config
	logger *zap.SugaredLogger
}

type NewHandlerParams struct {
	fx.In

	Doctor *diagnostic.Doctor
	Cfg    *config.Config
	Logger *zap.SugaredLogger
}

func NewHandler(p NewHandlerParams) *Handler {
	return &Handler{
		runner: p.Doctor,
		cfg:    p.Cfg,
		logger: p.Logger,
	}
}

func (h *Handler) RegisterRoute(r chi.Router) {
	r.Post("/v1/diagnose", h.Handle)
}

// Handle runs a full diagnostic with the server's configured key. A failed
// probe is reported as 502 since the fault lies with the upstream API or key.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	report, err := h.runner.Run(r.Context(), h.cfg.APIKey, nil)
	if errors.Is(err, diagnostic.ErrMissingCredential) {
		render.ChiErr(w, http.StatusServiceUnavailable, config.CredentialEnv+" is not configured")
		return
	}
	if err != nil {
		h.logger.Errorw("diagnose_failed", "err", err)
		render.ChiErr(w, http.StatusInternalServerError, "diagnostic failed")
		return
	}

	status := http.StatusOK
	if !report.Passed() {
		status = http.StatusBadGateway
	}
	render.ChiJSON(w, status, report)
}
