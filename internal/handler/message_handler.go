package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/morphofolio/backend/internal/dashboard"
	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/service"
)

// MessageHandler serves the admin message dashboard.
type MessageHandler struct {
	messages service.MessageService
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(messages service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type dashboardResponse struct {
	dashboard.View
	Notice string `json:"notice,omitempty"`
}

// List handles GET /api/admin/messages.
// Query params: q (search term), status (all/unread/read/replied), selected (message id).
// A failed fetch still answers 200 with the last-known list and notice=fetch_failed.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := model.ParseStatusFilter(q.Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	list, err := h.messages.List(r.Context())
	resp := dashboardResponse{}
	if err != nil {
		if !errors.Is(err, service.ErrFetchFailed) {
			writeError(w, http.StatusInternalServerError, "list_failed")
			return
		}
		resp.Notice = "fetch_failed"
	}

	state := dashboard.New(list).
		WithSearch(q.Get("q")).
		WithStatusFilter(filter)
	if id := q.Get("selected"); id != "" {
		state = state.Select(id)
	}
	resp.View = state.View()
	writeJSON(w, http.StatusOK, resp)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/messages/{id}/status.
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	msg, err := h.messages.UpdateStatus(r.Context(), r.PathValue("id"), status)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, msg)
	case errors.Is(err, service.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "message_not_found")
	default:
		writeError(w, http.StatusBadGateway, "update_failed")
	}
}
