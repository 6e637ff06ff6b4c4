package web

import (
	"net/http"
	"strconv"

	"commission-tracker/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	logger *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	r.Get("/api/sales", h.listSales)
	r.Post("/api/sales", h.createSale)
	r.Get("/api/sales/{id}", h.getSale)
	r.Delete("/api/sales/{id}", h.deleteSale)
	r.Post("/api/sales/{id}/installments/{seq}/toggle-billed", h.toggleBilled)

	r.Get("/api/commission/total", h.totalCommission)
	r.Get("/api/commission/monthly", h.monthlyCommission)

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlInt extracts a URL parameter as an integer. Returns false after
// writing a 400 response when the parameter is not a number.
func urlInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, "invalid "+name+": "+raw, "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
