package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"dojo-membership-backend/internal/security"
)

// NewRouter builds the HTTP API. All routes require authentication; voting,
// rejection, and listing additionally require the board role.
func NewRouter(
	tokenManager security.TokenManager,
	applicationHandler *ApplicationHandler,
	approvalHandler *ApprovalHandler,
) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokenManager))

	// Applicant-facing lifecycle.
	api.HandleFunc("/applications", applicationHandler.SubmitApplication).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}", applicationHandler.GetApplication).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/status", approvalHandler.GetApprovalStatus).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/withdraw", applicationHandler.WithdrawApplication).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/appeal", applicationHandler.SubmitAppeal).Methods(http.MethodPost)
	api.HandleFunc("/reapplication-eligibility", applicationHandler.CheckReapplicationEligibility).Methods(http.MethodGet)

	// Board-facing review.
	api.HandleFunc("/applications", requireBoard(applicationHandler.ListApplications)).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/votes", requireBoard(approvalHandler.CastVote)).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/reject", requireBoard(approvalHandler.RejectApplication)).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/quorum", requireBoard(approvalHandler.GetQuorumStatus)).Methods(http.MethodGet)

	return router
}
