package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
)

type placeBidRequest struct {
	InvoiceID string `json:"invoiceId"`
	// TotalPrice is a pointer so an absent field (validation failure) is
	// distinguishable from an explicit zero offer.
	TotalPrice *float64           `json:"totalPrice"`
	ItemPrices []models.ItemPrice `json:"itemPrices"`
}

// PlaceBid records the calling merchant's offer on an invoice.
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, market.Validation("invalid request body"))
		return
	}

	bid, err := h.bids.Place(r.Context(), requester(r), req.InvoiceID, req.TotalPrice, req.ItemPrices)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "bid", bid)
}

// ListBids returns all bids on an invoice, subject to ownership rules.
func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoiceId"]

	bids, err := h.bids.ListForInvoice(r.Context(), requester(r), invoiceID)
	if err != nil {
		respondError(w, err)
		return
	}
	if bids == nil {
		bids = []*models.Bid{}
	}

	respondOK(w, "bids", bids)
}
