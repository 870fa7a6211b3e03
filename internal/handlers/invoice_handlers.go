package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
)

type createInvoiceRequest struct {
	Items   []models.Item `json:"items"`
	Address string        `json:"address"`
	Phone   string        `json:"phone"`
}

type approveRequest struct {
	MerchantID string `json:"merchantId"`
}

// CreateInvoice creates a purchase request for the calling grocery.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, market.Validation("invalid request body"))
		return
	}

	invoice, err := h.invoices.Create(r.Context(), requester(r), req.Items, req.Address, req.Phone)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "invoice", invoice)
}

// ListInvoices returns the invoices visible to the caller's role.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context(), requester(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "invoices", invoices)
}

// ApproveInvoice selects the winning merchant for an invoice.
func (h *Handler) ApproveInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["id"]

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, market.Validation("invalid request body"))
		return
	}

	invoice, err := h.invoices.Approve(r.Context(), requester(r), invoiceID, req.MerchantID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "invoice", invoice)
}
