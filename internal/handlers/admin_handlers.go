package handlers

import "net/http"

// ListActors returns the full directory, phone numbers included.
// Admin-only; gated by the router.
func (h *Handler) ListActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.directory.ListActors(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "actors", actors)
}

// Stats returns marketplace-wide aggregates. Admin-only; gated by the router.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Aggregate(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "stats", stats)
}
