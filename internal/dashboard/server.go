package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"investrack/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server serves the dashboard over HTTP.
type Server struct {
	server *http.Server
	svc    *Service
	page   *template.Template
	logger *zap.Logger
}

// NewServer creates a dashboard server listening on port.
func NewServer(port int, svc *Service, logger *zap.Logger) *Server {
	s := &Server{
		svc:    svc,
		page:   template.Must(template.New("index.html").Funcs(templateFuncs).ParseFS(templatesFS, "templates/index.html")),
		logger: logger.Named("http"),
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("POST /settings", s.settingsHandler)
	mux.HandleFunc("GET /api/dashboard", s.dashboardHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	return mux
}

// ListenAndServe blocks serving the dashboard until Stop is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting dashboard server", zap.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dashboard server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping dashboard server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	view := s.svc.Run(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, newPage(view, s.logger)); err != nil {
		s.logger.Error("Failed to render dashboard", zap.Error(err))
	}
}

// settingsHandler applies the submitted form on top of the saved settings. Fields
// that are missing or not numbers keep their saved value.
func (s *Server) settingsHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	s.svc.EditSettings(r.Context(), func(settings *models.Settings) {
		for _, c := range models.Coins {
			if v, ok := formFloat(r, "hold_"+c.Symbol.String()); ok {
				settings.Holdings[c.Symbol] = v
			}
		}
		if v, ok := formFloat(r, "fx_rate"); ok {
			settings.FXRate = v
		}
		if v, ok := formFloat(r, "total_invested"); ok {
			settings.TotalInvested = v
		}
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	view := s.svc.Run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.logger.Error("Failed to write dashboard response", zap.Error(err))
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func formFloat(r *http.Request, key string) (float64, bool) {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
