package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gemini-keydoctor/config"
	"gemini-keydoctor/internal/pkg/render"
)

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler { return &Handler{cfg: cfg} }

func (h *Handler) RegisterRoute(r chi.Router) {
	r.Get("/health", h.Handle)
}

type response struct {
	OK                   bool   `json:"ok"`
	CredentialConfigured bool   `json:"credential_configured"`
	Model                string `json:"model"`
}

// Handle reports liveness only; it never calls the Gemini API.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	render.ChiJSON(w, http.StatusOK, response{
		OK:                   true,
		CredentialConfigured: h.cfg.HasCredential(),
		Model:                h.cfg.Model,
	})
}
