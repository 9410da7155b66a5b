package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type recordList struct {
	Records []service.RecordView `json:"records"`
}

func views(records []domain.WorkRecord) []service.RecordView {
	out := make([]service.RecordView, len(records))
	for i, r := range records {
		out[i] = service.NewRecordView(r)
	}
	return out
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListRecords returns records in entry order, or newest first with
// ?order=history.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	var records []domain.WorkRecord
	switch order := r.URL.Query().Get("order"); order {
	case "", "entry":
		records = h.ledger.Records(r.Context())
	case "history":
		records = h.ledger.History(r.Context())
	default:
		badRequest(w, "order must be entry or history")
		return
	}
	writeJSON(w, http.StatusOK, recordList{Records: views(records)})
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.ledger.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewRecordView(*rec))
}

// DraftRecord returns a prefilled record for ?date (default today).
func (h *Handler) DraftRecord(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}
	writeJSON(w, http.StatusOK, h.ledger.NewDraft(r.Context(), date))
}

// CreateRecord decodes the body over a draft for the body's date, so omitted
// odometer and fuel fields take the same defaults as the entry form.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		badRequest(w, "reading body: "+err.Error())
		return
	}

	var probe struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}

	rec := h.ledger.NewDraft(r.Context(), probe.Date)
	if err := json.Unmarshal(body, &rec); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}

	saved, err := h.ledger.AddRecord(r.Context(), rec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/records/"+saved.ID)
	writeJSON(w, http.StatusCreated, service.NewRecordView(*saved))
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the dashboard: totals over every record plus a chart of the
// last N shifts (?last, default 7).
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	last := DefaultChartDays
	if v := r.URL.Query().Get("last"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(w, "last must be a positive integer")
			return
		}
		last = n
	}
	writeJSON(w, http.StatusOK, h.ledger.Dashboard(r.Context(), last))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Settings(r.Context()))
}

// UpdateSettings merges the body into the current settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	s := h.ledger.Settings(r.Context())
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&s); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if err := h.ledger.UpdateSettings(r.Context(), s); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ledger.Settings(r.Context()))
}

// Coach always answers 200; model problems come back as fallback reports.
func (h *Handler) Coach(w http.ResponseWriter, r *http.Request) {
	report := h.coach.Analyze(r.Context(), h.ledger.Records(r.Context()))
	writeJSON(w, http.StatusOK, report)
}
