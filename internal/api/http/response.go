package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps workflow error kinds to HTTP statuses so the front end can
// render precise messages ("you already voted", "you cannot approve your own
// application") instead of a generic failure.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrApplicationNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: "application_not_found"})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation_error"})
	case errors.Is(err, domain.ErrSelfApproval):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Kind: "self_approval"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Kind: "unauthorized"})
	case errors.Is(err, domain.ErrDuplicateVote):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "duplicate_vote"})
	case errors.Is(err, domain.ErrIneligibleState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "ineligible_state"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
