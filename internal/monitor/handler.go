package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/qualityline/qualityline/internal/alerts"
	"github.com/qualityline/qualityline/internal/registry"
	"github.com/qualityline/qualityline/internal/system"
)

// Handler is the HTTP handler for all /api/v1/* endpoints plus /metrics.
// It reads session state from the system aggregate and returns JSON
// responses; /metrics returns Prometheus text exposition format.
type Handler struct {
	sys    *system.System
	engine *alerts.Engine
	mux    *http.ServeMux
}

// New creates a Handler wired to the given system aggregate and alert engine,
// and registers all routes. engine may be nil when alerting is not configured.
func New(sys *system.System, engine *alerts.Engine) http.Handler {
	h := &Handler{sys: sys, engine: engine, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/report", h.report)
	h.mux.HandleFunc("/api/v1/pieces", h.pieces)
	h.mux.HandleFunc("/api/v1/boxes", h.boxes)
	h.mux.HandleFunc("/api/v1/alerts", h.alerts)
	h.mux.HandleFunc("/metrics", h.metrics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status      string `json:"status"`
	TotalPieces int    `json:"total_pieces"`
	OpenBoxFill int    `json:"open_box_fill"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// health returns GET /api/v1/health — liveness plus headline counts.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := h.sys.Report()
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		TotalPieces: snap.TotalPieces,
		OpenBoxFill: snap.Storage.OpenBoxFill,
	})
}

// report returns GET /api/v1/report — the full statistics snapshot.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.sys.Report())
}

// pieces returns GET /api/v1/pieces?filter=all|approved|rejected.
func (h *Handler) pieces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter := registry.Filter(r.URL.Query().Get("filter"))
	switch filter {
	case "":
		filter = registry.FilterAll
	case registry.FilterAll, registry.FilterApproved, registry.FilterRejected:
	default:
		jsonErr(w, http.StatusBadRequest, "unknown filter")
		return
	}

	jsonResp(w, http.StatusOK, h.sys.ListPieces(filter))
}

// boxes returns GET /api/v1/boxes?status=open|closed.
func (h *Handler) boxes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := r.URL.Query().Get("status")
	switch status {
	case "open":
		jsonResp(w, http.StatusOK, h.sys.ListBoxes(system.BoxesOpen))
	case "closed", "":
		jsonResp(w, http.StatusOK, h.sys.ListBoxes(system.BoxesClosed))
	default:
		jsonErr(w, http.StatusBadRequest, "unknown status")
	}
}

// alerts returns GET /api/v1/alerts — firing and recently resolved alerts.
func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.engine == nil {
		jsonResp(w, http.StatusOK, []alerts.Alert{})
		return
	}
	jsonResp(w, http.StatusOK, h.engine.Active())
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
