package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/service"
)

// ApplicationHandler serves the applicant-facing lifecycle endpoints:
// submitting, withdrawing, appealing, and checking reapplication eligibility.
type ApplicationHandler struct {
	applications service.ApplicationService
	rejections   service.RejectionService
}

func NewApplicationHandler(applications service.ApplicationService, rejections service.RejectionService) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		rejections:   rejections,
	}
}

type submitApplicationRequest struct {
	Note string `json:"note"`
}

func (h *ApplicationHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req submitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.applications.SubmitApplication(r.Context(), claims.UserID, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) WithdrawApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	app, err := h.applications.WithdrawApplication(r.Context(), mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.applications.GetApplication(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))
	apps, err := h.applications.ListApplications(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"applications": apps,
		"count":        len(apps),
	})
}

type submitAppealRequest struct {
	Reason string `json:"reason"`
}

func (h *ApplicationHandler) SubmitAppeal(w http.ResponseWriter, r *http.Request) {
	var req submitAppealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.rejections.SubmitAppeal(r.Context(), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) CheckReapplicationEligibility(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.rejections.CheckReapplicationEligibility(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
