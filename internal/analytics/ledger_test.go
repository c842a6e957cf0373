package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"nekomate-backend/internal/models"
)

type appenderStub struct {
	created []*models.StudySession
	err     error
}

func (a *appenderStub) Create(ctx context.Context, session *models.StudySession) error {
	if a.err != nil {
		return a.err
	}
	a.created = append(a.created, session)
	return nil
}

func newTestLedger(end time.Time) (*Ledger, *appenderStub) {
	stub := &appenderStub{}
	l := NewLedger(stub)
	l.now = func() time.Time { return end }
	return l, stub
}

func TestLedgerRecordIfSignificant(t *testing.T) {
	base := time.Date(2025, 3, 10, 23, 58, 0, 0, time.UTC)

	tests := []struct {
		name       string
		elapsed    time.Duration
		wantRecord bool
	}{
		{"below noise floor", 30 * time.Second, false},
		{"exactly at noise floor", 60 * time.Second, false},
		{"just above noise floor", 61 * time.Second, true},
		{"long run", 90 * time.Minute, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, stub := newTestLedger(base.Add(tc.elapsed))

			session, err := l.RecordIfSignificant(context.Background(), uuid.New(), base, "")
			if err != nil {
				t.Fatalf("RecordIfSignificant failed: %v", err)
			}

			if !tc.wantRecord {
				if session != nil || len(stub.created) != 0 {
					t.Errorf("Run of %v should not be recorded", tc.elapsed)
				}
				return
			}

			if session == nil || len(stub.created) != 1 {
				t.Fatalf("Run of %v should produce exactly one record", tc.elapsed)
			}
			if session.DurationSeconds != int(tc.elapsed.Seconds()) {
				t.Errorf("Expected duration %d, got %d", int(tc.elapsed.Seconds()), session.DurationSeconds)
			}
		})
	}
}

func TestLedgerRecord_DateFromStartTime(t *testing.T) {
	// A run that crosses midnight belongs to the day it started.
	start := time.Date(2025, 3, 10, 23, 58, 0, 0, time.UTC)
	l, stub := newTestLedger(start.Add(10 * time.Minute))

	session, err := l.RecordIfSignificant(context.Background(), uuid.New(), start, "late night")
	if err != nil {
		t.Fatalf("RecordIfSignificant failed: %v", err)
	}

	if session.Date != "2025-03-10" {
		t.Errorf("Expected date 2025-03-10, got %s", session.Date)
	}
	if session.SessionName == nil || *session.SessionName != "late night" {
		t.Errorf("Expected session name 'late night', got %v", session.SessionName)
	}
	if len(stub.created) != 1 {
		t.Fatalf("Expected one stored record, got %d", len(stub.created))
	}
}

func TestLedgerRecord_UnnamedSession(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	l, _ := newTestLedger(start.Add(5 * time.Minute))

	session, err := l.RecordIfSignificant(context.Background(), uuid.New(), start, "")
	if err != nil {
		t.Fatalf("RecordIfSignificant failed: %v", err)
	}
	if session.SessionName != nil {
		t.Errorf("Unnamed run should store a nil session name, got %q", *session.SessionName)
	}
}

func TestLedgerRecord_StoreError(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	stub := &appenderStub{err: errors.New("connection refused")}
	l := NewLedger(stub)
	l.now = func() time.Time { return start.Add(5 * time.Minute) }

	session, err := l.RecordIfSignificant(context.Background(), uuid.New(), start, "")
	if err == nil {
		t.Fatal("Expected store error to propagate")
	}
	if session != nil {
		t.Error("Failed append must not return a session")
	}
}
