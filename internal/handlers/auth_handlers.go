package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/middleware"
	"github.com/orderpro/marketplace/internal/models"
)

type registerRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Role    models.Role `json:"role"`
	Address string      `json:"address"`
}

type loginRequest struct {
	Phone string `json:"phone"`
}

// Register creates a new actor and opens a session for it, mirroring the
// register-then-logged-in flow of the storefront.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, market.Validation("invalid request body"))
		return
	}

	actor, err := h.directory.Register(r.Context(), req.Name, req.Phone, req.Role, req.Address)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.jwtManager.Generate(actor)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"actor":   actor.Summary(),
		"token":   token,
	})
}

// Login authenticates by phone number and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, market.Validation("invalid request body"))
		return
	}

	actor, err := h.directory.Authenticate(r.Context(), req.Phone)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.jwtManager.Generate(actor)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"actor":   actor.Summary(),
		"token":   token,
	})
}

// Logout acknowledges the end of a session. Session tokens are stateless, so
// ending a session is the client discarding its token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, envelope{"success": true})
}

// CurrentActor returns the full directory profile behind the session.
// Unlike authorization checks, which trust the session snapshot, this
// re-resolves the actor so the profile reflects the directory's current
// record; a session whose actor vanished is treated as expired.
func (h *Handler) CurrentActor(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	actor, err := h.directory.FindByID(r.Context(), claims.ActorID)
	if err != nil {
		if errors.Is(err, market.NotFound("")) {
			respondError(w, market.Unauthenticated("session actor no longer exists"))
			return
		}
		respondError(w, err)
		return
	}

	respondOK(w, "actor", actor)
}
