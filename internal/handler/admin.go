package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fmhgames/reward-service/internal/adminauth"
	"github.com/fmhgames/reward-service/internal/balance"
	"github.com/fmhgames/reward-service/internal/domain"
)

// CreateActionRequest describes a balance action to create. Execute=true
// collapses create and execute into one call for operator convenience;
// the action is still persisted in created state first.
type CreateActionRequest struct {
	Type       string                 `json:"type" validate:"required,max=64"`
	Reason     string                 `json:"reason" validate:"required,min=4,max=512"`
	Parameters map[string]interface{} `json:"parameters"`
	Execute    bool                   `json:"execute"`
}

// BalanceActionResponse wraps a balance action for API consumers
type BalanceActionResponse struct {
	Success bool                  `json:"success"`
	Action  *domain.BalanceAction `json:"action"`
}

// adminFromRequest pulls the identity the auth middleware attached.
// A missing identity on an admin route is a wiring bug, not a client error.
func adminFromRequest(w http.ResponseWriter, r *http.Request) (domain.AdminUser, bool) {
	actor, ok := adminauth.UserFromContext(r.Context())
	if !ok {
		loggerFromRequest(r).Error("Admin route reached without authenticated identity")
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
	}
	return actor, ok
}

// HandleCreateAction creates (and optionally executes) a balance action
// @Summary Create a balance action
// @Description Create an audited economic mutation; set execute to run it immediately
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateActionRequest true "Action details"
// @Success 200 {object} BalanceActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/actions [post]
func HandleCreateAction(svc balance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := adminFromRequest(w, r)
		if !ok {
			return
		}

		var req CreateActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "create action"); err != nil {
			return
		}

		action, err := svc.Create(r.Context(), actor, domain.BalanceActionType(req.Type), req.Reason, req.Parameters)
		if err != nil {
			respondServiceError(w, r, "Create balance action", err)
			return
		}

		if req.Execute {
			action, err = svc.Execute(r.Context(), actor, action.ID)
			if err != nil {
				respondServiceError(w, r, "Execute balance action", err)
				return
			}
		}

		respondJSON(w, http.StatusOK, BalanceActionResponse{Success: true, Action: action})
	}
}

// HandleExecuteAction executes a previously created balance action
// @Summary Execute a balance action
// @Description Run a created action exactly once; re-execution returns the prior result
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Action ID"
// @Success 200 {object} BalanceActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/actions/{id}/execute [post]
func HandleExecuteAction(svc balance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := adminFromRequest(w, r)
		if !ok {
			return
		}

		actionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		action, err := svc.Execute(r.Context(), actor, actionID)
		if err != nil {
			respondServiceError(w, r, "Execute balance action", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceActionResponse{Success: true, Action: action})
	}
}

// HandleGetAction fetches a balance action by ID
// @Summary Get a balance action
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Action ID"
// @Success 200 {object} BalanceActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/actions/{id} [get]
func HandleGetAction(svc balance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := adminFromRequest(w, r); !ok {
			return
		}

		actionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		action, err := svc.Get(r.Context(), actionID)
		if err != nil {
			respondServiceError(w, r, "Get balance action", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceActionResponse{Success: true, Action: action})
	}
}
