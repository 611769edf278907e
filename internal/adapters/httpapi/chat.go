// Package httpapi declares HTTP contracts and route registration helpers.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// chatRequest mirrors the OpenAPI schema for POST /chat.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (c chatRequest) validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("missing message")
	}
	return nil
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// ChatHandler handles chat turn requests.
type ChatHandler struct {
	deps Dependencies
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps Dependencies) *ChatHandler {
	return &ChatHandler{deps: deps}
}

// HandlePostChat handles POST /chat requests. A request without a session id
// is given a fresh one, returned in the response so the client can keep the
// conversation context alive.
func (h *ChatHandler) HandlePostChat(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.post_chat"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := h.deps.Answer(r.Context(), sessionID, req.Message)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{SessionID: sessionID, Reply: reply})
}
