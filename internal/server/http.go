package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gemini-keydoctor/config"
)

// NewHTTPServer sizes WriteTimeout so a full diagnostic run fits inside one
// response.
func NewHTTPServer(cfg *config.Config, mux *chi.Mux) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.ConnectivityTimeout + cfg.QuotaTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
