// Package handlers translates HTTP requests into marketplace operations.
// It owns the routing table and the JSON envelope; all business rules live
// in the service layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderpro/marketplace/internal/auth"
	"github.com/orderpro/marketplace/internal/middleware"
	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	directory  *service.DirectoryService
	invoices   *service.InvoiceService
	bids       *service.BidService
	stats      *service.StatsService
	jwtManager *auth.JWTManager
	limiter    *middleware.RateLimiter
}

// New creates the HTTP handler set.
func New(
	directory *service.DirectoryService,
	invoices *service.InvoiceService,
	bids *service.BidService,
	stats *service.StatsService,
	jwtManager *auth.JWTManager,
	limiter *middleware.RateLimiter,
) *Handler {
	return &Handler{
		directory:  directory,
		invoices:   invoices,
		bids:       bids,
		stats:      stats,
		jwtManager: jwtManager,
		limiter:    limiter,
	}
}

// SetupRoutes configures all HTTP routes.
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Metrics)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(
		h.limiter.Middleware,
		middleware.Authenticate(h.jwtManager),
		middleware.Logging,
	)

	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", middleware.RequireAuth(h.Logout)).Methods(http.MethodPost)
	api.HandleFunc("/user", middleware.RequireAuth(h.CurrentActor)).Methods(http.MethodGet)

	api.HandleFunc("/invoices", middleware.RequireRole(models.RoleGrocery)(h.CreateInvoice)).Methods(http.MethodPost)
	api.HandleFunc("/invoices", middleware.RequireAuth(h.ListInvoices)).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/approve", middleware.RequireAuth(h.ApproveInvoice)).Methods(http.MethodPost)

	api.HandleFunc("/bids", middleware.RequireRole(models.RoleMerchant)(h.PlaceBid)).Methods(http.MethodPost)
	api.HandleFunc("/bids/{invoiceId}", middleware.RequireAuth(h.ListBids)).Methods(http.MethodGet)

	api.HandleFunc("/users", middleware.RequireRole(models.RoleAdmin)(h.ListActors)).Methods(http.MethodGet)
	api.HandleFunc("/stats", middleware.RequireRole(models.RoleAdmin)(h.Stats)).Methods(http.MethodGet)

	return router
}

// Health returns service health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, envelope{
		"status":  "healthy",
		"service": "marketplace",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// requester builds the acting identity from the session snapshot.
// Routes behind RequireAuth/RequireRole always have claims.
func requester(r *http.Request) models.Summary {
	claims := middleware.ClaimsFrom(r.Context())
	return models.Summary{ID: claims.ActorID, Name: claims.Name, Role: claims.Role}
}
