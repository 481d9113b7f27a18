package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	bluebookservice "relist/contexts/marketplace/bluebook-service"
	listingservice "relist/contexts/marketplace/listing-service"
	listingerrors "relist/contexts/marketplace/listing-service/domain/errors"
	listinghttp "relist/contexts/marketplace/listing-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "relist/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	listings listingservice.Module
	bluebook bluebookservice.Module
}

func New(
	listings listingservice.Module,
	bluebook bluebookservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		listings: listings,
		bluebook: bluebook,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the handler for in-process tests.
func (s *Server) Mux() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.HandleFunc("POST /api/items", s.handleCreateListing)
	s.mux.HandleFunc("GET /api/items", s.handleListListings)
	s.mux.HandleFunc("GET /api/items/{listing_id}", s.handleGetListing)
	s.mux.HandleFunc("POST /api/items/{listing_id}/renew", s.handleRenewListing)
	s.mux.HandleFunc("POST /api/expire-check", s.handleSweepExpirations)

	s.mux.HandleFunc("GET /api/bluebook", s.handleQueryEntries)
	s.mux.HandleFunc("GET /api/bluebook/lookup", s.handleLookupEntry)
	s.mux.HandleFunc("GET /api/bluebook/price-check", s.handlePriceCheck)
	s.mux.HandleFunc("GET /api/bluebook/suggested-price/{listing_id}", s.handleSuggestedPrice)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	sellerID := r.Header.Get("X-User-Id")
	if sellerID == "" {
		writeListingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req listinghttp.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeListingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.listings.Handler.CreateListingHandler(r.Context(), sellerID, req)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.listings.Handler.ListListingsHandler(
		r.Context(),
		query.Get("status"),
		query.Get("seller_id"),
	)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listingID := r.PathValue("listing_id")
	resp, err := s.listings.Handler.GetListingHandler(r.Context(), listingID)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenewListing(w http.ResponseWriter, r *http.Request) {
	actorID := r.Header.Get("X-User-Id")
	if actorID == "" {
		writeListingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req listinghttp.RenewListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeListingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	listingID := r.PathValue("listing_id")
	resp, err := s.listings.Handler.RenewListingHandler(r.Context(), actorID, listingID, req)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSweepExpirations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.listings.Handler.SweepExpirationsHandler(r.Context())
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeListingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listingerrors.ErrListingNotFound):
		writeListingError(w, http.StatusNotFound, "listing_not_found", err.Error())
	case errors.Is(err, listingerrors.ErrNotListingOwner):
		writeListingError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, listingerrors.ErrNoQualifyingChange):
		writeListingError(w, http.StatusBadRequest, "no_qualifying_change", err.Error())
	case errors.Is(err, listingerrors.ErrInvalidListingInput):
		writeListingError(w, http.StatusBadRequest, "invalid_listing_input", err.Error())
	case errors.Is(err, listingerrors.ErrInvalidStatusFilter):
		writeListingError(w, http.StatusBadRequest, "invalid_status_filter", err.Error())
	default:
		writeListingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeListingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, listinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
