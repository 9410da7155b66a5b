// Package api exposes the ledger over HTTP for a phone or browser front end
// on the same network. Records are always served with their derived stats.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/driverlog/internal/intelligence"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// DefaultChartDays is the chart window used when ?last is absent.
const DefaultChartDays = 7

type Handler struct {
	ledger service.LedgerService
	coach  intelligence.CoachService
	logger *slog.Logger
}

func NewHandler(ledger service.LedgerService, coach intelligence.CoachService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if coach == nil {
		coach = intelligence.NewCoachService(nil)
	}
	return &Handler{ledger: ledger, coach: coach, logger: logger.With("component", "api")}
}

// Routes builds the router. The coach route gets a longer timeout than the
// rest since it waits on a model.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(10 * time.Second))

			r.Get("/records", h.ListRecords)
			r.Post("/records", h.CreateRecord)
			r.Get("/records/draft", h.DraftRecord)
			r.Get("/records/{id}", h.GetRecord)
			r.Delete("/records/{id}", h.DeleteRecord)

			r.Get("/stats", h.Stats)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
		})

		r.With(chimiddleware.Timeout(60*time.Second)).Post("/coach", h.Coach)
	})
	return r
}

// NewServer wraps the routes in an http.Server listening on addr.
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
