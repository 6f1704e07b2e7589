package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"thermostat_panel/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var eventColumns = []string{"id", "occurred_at", "type", "message", "meta"}

func newMockEventRepo(t *testing.T) (*EventSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewEventSQLite(db), mock
}

func TestEventSQLite_AppendFillsDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "COMMAND", "Setpoint submitted", `{"setpoint":"21.5"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.PanelEvent{
		Type:        " command ",
		Description: "Setpoint submitted",
		Metadata:    map[string]string{"setpoint": "21.5"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestEventSQLite_AppendFormatsTimeAsUTC(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs("ev-1", "2025-03-01 10:00:00", "ERROR", "boom", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.PanelEvent{
		EventID:     "ev-1",
		OccurredAt:  at,
		Type:        "error",
		Description: "boom",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestEventSQLite_AppendDBError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).WillReturnError(errors.New("database is locked"))

	err := repo.Append(context.Background(), models.PanelEvent{Type: "ERROR", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "database is locked") {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestEventSQLite_ListNoFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	meta, _ := json.Marshal(map[string]any{"operation": "Status update failed"})
	rows := sqlmock.NewRows(eventColumns).
		AddRow("1", now, "ERROR", "HTTP error! status: 500", string(meta)).
		AddRow("2", now.Add(time.Minute), "COMMAND", "Mode submitted", nil).
		AddRow("3", now.Add(2*time.Minute), "COMMAND", "raw meta", "not-json")

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL + " ORDER BY occurred_at ASC")).WillReturnRows(rows)

	got, err := repo.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 events, got %d", len(got))
	}
	b, _ := json.Marshal(got[0].Metadata)
	if string(b) != string(meta) {
		t.Fatalf("metadata: got %s, want %s", b, meta)
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil metadata, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != "not-json" {
		t.Fatalf("malformed metadata should be kept raw, got %#v", got[2].Metadata)
	}
}

func TestEventSQLite_ListWithFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	q := selectEventsSQL + " WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC"

	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs("2025-01-01 11:00:00", "2025-01-01 12:00:00", "ERROR").
		WillReturnRows(sqlmock.NewRows(eventColumns).AddRow("2", from, "ERROR", "b", nil))

	got, err := repo.List(context.Background(), from, to, " error ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "2" {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestEventSQLite_ListScanError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL)).
		WillReturnRows(sqlmock.NewRows(eventColumns).AddRow("x", 123, "ERROR", "m", nil))

	if _, err := repo.List(context.Background(), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected scan error")
	}
}

func TestEventSQLite_ListQueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockEventRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL)).WillReturnError(sql.ErrConnDone)

	if _, err := repo.List(context.Background(), time.Time{}, time.Time{}, ""); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected wrapped ErrConnDone, got %v", err)
	}
}
