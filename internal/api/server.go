// Package api provides the HTTP server for roomledger.
// It mounts the Connect ReportService next to plain HTTP export downloads,
// health and metrics endpoints.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/roomledger/internal/calculator"
	"github.com/mmynk/roomledger/internal/export"
	"github.com/mmynk/roomledger/internal/metrics"
	"github.com/mmynk/roomledger/internal/middleware"
	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/internal/report"
	"github.com/mmynk/roomledger/internal/service"
	"github.com/mmynk/roomledger/internal/storage"
	"github.com/mmynk/roomledger/pkg/reportapi"
)

// Server is the roomledger HTTP API server.
type Server struct {
	builder    *report.Builder
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
	corsOrigin string
}

// NewServer creates a new API server. gatherer backs /metrics and may be nil
// to disable the endpoint.
func NewServer(builder *report.Builder, m *metrics.Metrics, gatherer prometheus.Gatherer, corsOrigin string) *Server {
	return &Server{builder: builder, metrics: m, gatherer: gatherer, corsOrigin: corsOrigin}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(s.corsOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	path, handler := reportapi.NewReportServiceHandler(
		service.NewReportService(s.builder),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)
	r.Handle(path+"*", handler)

	r.Route("/rooms/{roomID}", func(r chi.Router) {
		r.Get("/report.xlsx", s.handleExport(export.FormatXLSX))
		r.Get("/report.pdf", s.handleExport(export.FormatPDF))
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// handleExport renders the room report as a downloadable document.
// Query parameters from and to are optional YYYY-MM-DD bounds.
func (s *Server) handleExport(format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "roomID")

		req := report.Request{RoomID: roomID}
		var err error
		if v := r.URL.Query().Get("from"); v != "" {
			if req.From, err = models.ParseDate(v); err != nil {
				writeError(w, err)
				return
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if req.To, err = models.ParseDate(v); err != nil {
				writeError(w, err)
				return
			}
		}

		rep, err := s.builder.Build(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		data, err := export.Build(format, rep)
		if err != nil {
			slog.Error("Export failed", "room_id", roomID, "format", format, "error", err)
			writeError(w, err)
			return
		}
		s.metrics.IncExport(string(format))

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(format, rep)))
		w.Header().Set("Last-Modified", rep.GeneratedAt.UTC().Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			slog.Warn("Failed to write export", "room_id", roomID, "format", format, "error", err)
		}
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, calculator.ErrUnknownParticipant):
		return http.StatusConflict
	case errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrUnknownCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}
