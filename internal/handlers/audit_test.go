package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"walletapp/internal/models"
	"walletapp/internal/service"
)

func getAudit(t *testing.T, s *service.Service, url string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(s)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header = authHeader("good-token")
	r.ServeHTTP(w, req)
	return w
}

func TestListAudit_Success(t *testing.T) {
	audit := &mockAudit{listResp: []models.AuditEvent{
		{EventID: "e1", Type: models.AuditSignUp, Description: "user signed up"},
		{EventID: "e2", Type: models.AuditSignIn, Description: "user signed in"},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: "u1"}, Audit: audit}

	w := getAudit(t, s, "/api/v1/audit?type=signup")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count  int                 `json:"count"`
		Events []models.AuditEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Events) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if audit.lastFilter.Type != "SIGNUP" {
		t.Fatalf("type filter not normalized: %q", audit.lastFilter.Type)
	}
}

func TestListAudit_DateOnlyToIsEndOfDay(t *testing.T) {
	audit := &mockAudit{}
	s := &service.Service{Authorization: &mockAuth{parseID: "u1"}, Audit: audit}

	w := getAudit(t, s, "/api/v1/audit?from=2026-08-01&to=2026-08-31")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !audit.lastFilter.From.Equal(wantFrom) {
		t.Fatalf("from: got %v, want %v", audit.lastFilter.From, wantFrom)
	}
	// date-only 'to' must cover the whole day
	endOfDay := time.Date(2026, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !audit.lastFilter.To.Equal(endOfDay) {
		t.Fatalf("to: got %v, want %v", audit.lastFilter.To, endOfDay)
	}
}

func TestListAudit_BadRanges(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"bad from", "/api/v1/audit?from=yesterday"},
		{"bad to", "/api/v1/audit?to=tomorrow"},
		{"from after to", "/api/v1/audit?from=2026-08-31&to=2026-08-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Authorization: &mockAuth{parseID: "u1"}, Audit: &mockAudit{}}
			w := getAudit(t, s, tc.url)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (body=%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestListAudit_RequiresToken(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Audit: &mockAudit{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
