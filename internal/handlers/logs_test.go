package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/service"
)

func getLogs(t *testing.T, logs *mockEventLog, query string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/"+query, nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	return w
}

func TestLogsHandler_List(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	logs := &mockEventLog{resp: []models.PanelEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventCommand, Description: "POST /setpoint"},
		{EventID: "e2", OccurredAt: now.Add(time.Second), Type: models.EventError, Description: "Status update failed: HTTP error! status: 500"},
	}}

	w := getLogs(t, logs, "?from="+now.Format(time.RFC3339)+"&to="+now.Add(2*time.Second).Format(time.RFC3339)+"&type=%20error")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                 `json:"count"`
		Events []models.PanelEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || len(out.Events) != 2 || out.Events[0].EventID != "e1" {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != models.EventError {
		t.Errorf("type = %q; want %q", logs.lastType, models.EventError)
	}
	if !logs.lastFrom.Equal(now) {
		t.Errorf("from = %v; want %v", logs.lastFrom, now)
	}
}

func TestLogsHandler_QueryTimes(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "date only to covers the day",
			query:    "?from=2025-08-01&to=2025-08-01",
			wantFrom: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, time.August, 1, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:   "date time layout",
			query:  "?to=2025-08-01%2012:30:00",
			wantTo: time.Date(2025, time.August, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "offset normalized to UTC",
			query:    "?from=2025-08-01T10:00:00%2B02:00",
			wantFrom: time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &mockEventLog{}
			w := getLogs(t, logs, tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if !logs.lastFrom.Equal(tt.wantFrom) {
				t.Errorf("from = %v; want %v", logs.lastFrom, tt.wantFrom)
			}
			if !logs.lastTo.Equal(tt.wantTo) {
				t.Errorf("to = %v; want %v", logs.lastTo, tt.wantTo)
			}
		})
	}
}

func TestLogsHandler_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{name: "bad from", query: "?from=notatime", want: http.StatusBadRequest},
		{name: "bad to", query: "?to=31/08/2025", want: http.StatusBadRequest},
		{name: "inverted range", query: "?from=2025-08-02&to=2025-08-01", err: service.ErrInvalidTimeRange, want: http.StatusBadRequest},
		{name: "unknown type", query: "?type=start", err: service.ErrUnknownEventType, want: http.StatusBadRequest},
		{name: "repository failure", err: errors.New("db locked"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getLogs(t, &mockEventLog{err: tt.err}, tt.query)
			if w.Code != tt.want {
				t.Fatalf("status=%d; want %d (body=%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
