package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/service"
)

func sampleMessages() []model.Message {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.Message{
		{ID: "m1", Name: "Alice", Email: "alice@example.com", Subject: "Flutter app", Message: "Can you build one?", Status: model.StatusUnread, CreatedAt: base},
		{ID: "m2", Name: "Bob", Email: "bob@example.com", Subject: "Consulting", Message: "Rates?", Status: model.StatusRead, CreatedAt: base},
		{ID: "m3", Name: "Carol", Email: "carol@example.com", Subject: "Thanks", Message: "Great talk on flutter", Status: model.StatusReplied, CreatedAt: base},
	}
}

func getDashboard(h *MessageHandler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/admin/messages"+query, nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	return rec
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) dashboardResponse {
	t.Helper()
	var resp dashboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestMessageHandler_List_SearchAndStatus(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		listFunc: func(ctx context.Context) ([]model.Message, error) { return sampleMessages(), nil },
	})

	rec := getDashboard(h, "?q=FLUTTER&status=unread")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeDashboard(t, rec)
	if len(resp.Messages) != 1 || resp.Messages[0].ID != "m1" {
		t.Errorf("expected only m1, got %+v", resp.Messages)
	}
	if resp.Stats.Total != 3 || resp.Stats.Unread != 1 {
		t.Errorf("stats should cover the full list, got %+v", resp.Stats)
	}
	if !resp.FiltersActive {
		t.Error("expected filters_active=true")
	}
	if resp.Notice != "" {
		t.Errorf("expected no notice, got %q", resp.Notice)
	}
}

func TestMessageHandler_List_SelectedIsSticky(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		listFunc: func(ctx context.Context) ([]model.Message, error) { return sampleMessages(), nil },
	})

	resp := decodeDashboard(t, getDashboard(h, "?selected=m2&status=unread"))
	if resp.Selected == nil || resp.Selected.ID != "m2" {
		t.Fatalf("expected m2 to stay selected while filtered out, got %+v", resp.Selected)
	}
	if len(resp.Actions) != 1 || resp.Actions[0] != model.StatusReplied {
		t.Errorf("expected [replied] actions for a read message, got %v", resp.Actions)
	}
}

func TestMessageHandler_List_UnknownSelectionIgnored(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		listFunc: func(ctx context.Context) ([]model.Message, error) { return sampleMessages(), nil },
	})

	resp := decodeDashboard(t, getDashboard(h, "?selected=nope"))
	if resp.Selected != nil {
		t.Errorf("expected no selection, got %+v", resp.Selected)
	}
}

func TestMessageHandler_List_FetchFailedKeepsLastKnown(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		listFunc: func(ctx context.Context) ([]model.Message, error) {
			return sampleMessages()[:1], fmt.Errorf("%w: %w", service.ErrFetchFailed, errors.New("timeout"))
		},
	})

	rec := getDashboard(h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeDashboard(t, rec)
	if resp.Notice != "fetch_failed" {
		t.Errorf("expected notice=fetch_failed, got %q", resp.Notice)
	}
	if len(resp.Messages) != 1 {
		t.Errorf("expected last-known list of 1, got %d", len(resp.Messages))
	}
}

func TestMessageHandler_List_EmptyListIsArray(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	rec := getDashboard(h, "")
	if !strings.Contains(rec.Body.String(), `"messages":[]`) {
		t.Errorf("expected an empty JSON array, got %s", rec.Body.String())
	}
}

func TestMessageHandler_List_InvalidStatus(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})
	rec := getDashboard(h, "?status=archived")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func patchStatus(h *MessageHandler, id, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/admin/messages/{id}/status", h.UpdateStatus)
	req := httptest.NewRequest("PATCH", "/api/admin/messages/"+id+"/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestMessageHandler_UpdateStatus_Success(t *testing.T) {
	var gotID string
	var gotStatus model.MessageStatus
	h := NewMessageHandler(&mockMessageService{
		updateStatusFunc: func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
			gotID, gotStatus = id, status
			return model.Message{ID: id, Status: status}, nil
		},
	})

	rec := patchStatus(h, "m1", `{"status":"read"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if gotID != "m1" || gotStatus != model.StatusRead {
		t.Errorf("expected (m1, read), got (%s, %s)", gotID, gotStatus)
	}
}

func TestMessageHandler_UpdateStatus_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"invalid status", `{"status":"archived"}`, nil, http.StatusBadRequest, "invalid_status"},
		{"invalid json", `{`, nil, http.StatusBadRequest, "invalid_json"},
		{"not found", `{"status":"read"}`, fmt.Errorf("%w: %w", service.ErrUpdateFailed, service.ErrMessageNotFound), http.StatusNotFound, "message_not_found"},
		{"update failed", `{"status":"replied"}`, fmt.Errorf("%w: boom", service.ErrUpdateFailed), http.StatusBadGateway, "update_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewMessageHandler(&mockMessageService{
				updateStatusFunc: func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
					if tc.err == nil {
						t.Error("service should not be called")
					}
					return model.Message{}, tc.err
				},
			})
			rec := patchStatus(h, "m1", tc.body)
			if rec.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantErr) {
				t.Errorf("expected error %q, got %s", tc.wantErr, rec.Body.String())
			}
		})
	}
}
