package web

import (
	"errors"
	"net/http"
	"strconv"

	"commission-tracker/internal/app"
	"commission-tracker/internal/core"
)

// writeServiceError maps service sentinel errors to HTTP status codes.
// Anything unrecognized is a server fault, not a client error: a store
// outage must surface as 500, never 400.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrSaleNotFound), errors.Is(err, core.ErrInstallmentNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrInvalidPaymentTerm):
		writeError(w, r, err.Error(), "INVALID_PAYMENT_TERM", http.StatusBadRequest)
	case errors.Is(err, app.ErrInvalidInput):
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// listSales handles GET /api/sales. Accepts an optional ?seller= filter.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSales(r.Context(), r.URL.Query().Get("seller"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getSale handles GET /api/sales/{id}.
func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	result, err := h.svc.GetSale(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Sale)
}

// createSale handles POST /api/sales.
// Body: { product_line, value, discount_percent, payment_term, buyer, seller? }
// with numeric fields as strings. The installment schedule is always
// computed server-side; a submitted schedule is ignored.
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var body app.CreateSaleRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.CreateSale(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Sale)
}

// deleteSale handles DELETE /api/sales/{id}. Installments are owned by the
// sale and removed with it.
func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSale(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toggleBilled handles POST /api/sales/{id}/installments/{seq}/toggle-billed.
// {seq} is the installment's sequence value. Exactly one installment is
// flipped per call.
func (h *Handler) toggleBilled(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	seq, ok := urlInt(w, r, "seq")
	if !ok {
		return
	}

	result, err := h.svc.ToggleInstallmentBilled(r.Context(), id, seq)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Sale)
}

// totalCommission handles GET /api/commission/total.
func (h *Handler) totalCommission(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.TotalCommission(r.Context(), r.URL.Query().Get("seller"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// monthlyCommission handles GET /api/commission/monthly?year=YYYY&month=M.
// Only billed installments due in the requested month are counted.
func (h *Handler) monthlyCommission(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, r, "year query parameter must be a number", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, "month query parameter must be a number", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CommissionForMonth(r.Context(), r.URL.Query().Get("seller"), year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
