package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/agentforge/license-server/internal/api/middleware"
	"github.com/agentforge/license-server/internal/api/response"
	"github.com/agentforge/license-server/internal/webhook"
)

type webhookAck struct {
	Status string `json:"status"`
}

// WebhookHandler handles the POST /webhook endpoint for marketplace events.
type WebhookHandler struct {
	ingestor *webhook.Service
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(ingestor *webhook.Service) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor}
}

// ServeHTTP reads the raw body and hands it to the ingestor together with
// the signature header. The body must stay unparsed until the signature
// check has passed.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_BODY", "Failed to read request body", requestID)
		return
	}

	err = h.ingestor.Ingest(r.Context(), body, r.Header.Get(webhook.SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrMissingSignature), errors.Is(err, webhook.ErrInvalidSignature):
			response.Err(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature verification failed", requestID)
		case errors.Is(err, webhook.ErrMalformedPayload):
			response.Err(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Malformed marketplace event payload", requestID)
		default:
			slog.Error("failed to ingest marketplace event", "error", err)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process marketplace event", requestID)
		}
		return
	}

	response.JSON(w, http.StatusOK, webhookAck{Status: "success"})
}
