package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/service"
)

// ApprovalHandler serves the board-facing voting endpoints.
type ApprovalHandler struct {
	approvals  service.ApprovalService
	rejections service.RejectionService
}

func NewApprovalHandler(approvals service.ApprovalService, rejections service.RejectionService) *ApprovalHandler {
	return &ApprovalHandler{
		approvals:  approvals,
		rejections: rejections,
	}
}

type castVoteRequest struct {
	Decision   string   `json:"decision"`
	Notes      string   `json:"notes,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

func (h *ApprovalHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.approvals.CastVote(r.Context(), mux.Vars(r)["id"], claims.UserID,
		domain.VoteDecision(req.Decision), req.Notes, req.Conditions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type rejectApplicationRequest struct {
	Reason                  string `json:"reason"`
	RecommendedImprovements string `json:"recommended_improvements,omitempty"`
	AllowReapplication      *bool  `json:"allow_reapplication,omitempty"`
}

func (h *ApprovalHandler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req rejectApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Reapplication is permitted unless the board explicitly forbids it.
	allowReapplication := true
	if req.AllowReapplication != nil {
		allowReapplication = *req.AllowReapplication
	}

	result, err := h.rejections.RejectWithReason(r.Context(), mux.Vars(r)["id"], claims.UserID,
		req.Reason, req.RecommendedImprovements, allowReapplication)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ApprovalHandler) GetQuorumStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.approvals.CheckApprovalQuorum(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ApprovalHandler) GetApprovalStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.approvals.GetApprovalStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
