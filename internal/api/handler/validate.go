package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agentforge/license-server/internal/api/middleware"
	"github.com/agentforge/license-server/internal/api/response"
	"github.com/agentforge/license-server/internal/api/validation"
	"github.com/agentforge/license-server/internal/identity"
	"github.com/agentforge/license-server/internal/license"
)

type validateRequest struct {
	AccessToken string `json:"accessToken"`
	Repository  string `json:"repository"`
	ActionID    string `json:"actionId"`
}

// ValidateHandler handles the POST /validate endpoint.
type ValidateHandler struct {
	licenses *license.Service
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(licenses *license.Service) *ValidateHandler {
	return &ValidateHandler{licenses: licenses}
}

// ServeHTTP renders the license decision for a validation request. An
// authentication failure is a 401, distinct from a licensed=false decision.
func (h *ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateLicenseRequest(validation.LicenseRequest{
		AccessToken: req.AccessToken,
		Repository:  req.Repository,
		ActionID:    req.ActionID,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	repository := strings.TrimSpace(req.Repository)
	slog.Info("validating license", "repository", repository, "actionId", req.ActionID)

	decision, err := h.licenses.Validate(r.Context(), req.AccessToken, repository)
	if err != nil {
		if errors.Is(err, identity.ErrAuthFailed) {
			response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid access token or repository access", requestID)
			return
		}
		slog.Error("license validation failed", "error", err, "repository", repository)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "License validation failed", requestID)
		return
	}

	response.JSON(w, http.StatusOK, decision)
}
