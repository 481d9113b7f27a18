package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	bluebookerrors "relist/contexts/marketplace/bluebook-service/domain/errors"
	bluebookhttp "relist/contexts/marketplace/bluebook-service/transport/http"
)

func (s *Server) handleQueryEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.bluebook.Handler.QueryEntriesHandler(
		r.Context(),
		query.Get("brand"),
		query.Get("model"),
		query.Get("qualityTier"),
		query.Get("category"),
	)
	if err != nil {
		writeBluebookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLookupEntry(w http.ResponseWriter, r *http.Request) {
	resp, err := s.bluebook.Handler.LookupEntryHandler(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		writeBluebookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePriceCheck(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	price, err := strconv.ParseFloat(query.Get("price"), 64)
	if err != nil {
		writeBluebookError(w, http.StatusBadRequest, "invalid_price", "price must be a number")
		return
	}

	resp, err := s.bluebook.Handler.PriceCheckHandler(r.Context(), query.Get("title"), price)
	if err != nil {
		writeBluebookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuggestedPrice(w http.ResponseWriter, r *http.Request) {
	listingID := r.PathValue("listing_id")
	resp, err := s.bluebook.Handler.SuggestedPriceHandler(r.Context(), listingID)
	if err != nil {
		writeBluebookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBluebookDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bluebookerrors.ErrListingNotFound):
		writeBluebookError(w, http.StatusNotFound, "listing_not_found", err.Error())
	case errors.Is(err, bluebookerrors.ErrInvalidPrice):
		writeBluebookError(w, http.StatusBadRequest, "invalid_price", err.Error())
	default:
		writeBluebookError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBluebookError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(bluebookhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
