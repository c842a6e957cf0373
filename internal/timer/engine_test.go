package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"nekomate-backend/internal/models"
)

// fakeClock drives ticks by hand. advance moves wall-clock time one second
// at a time and fires the registered tick callback after each step.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
	fn  func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) EverySecond(fn func()) func() {
	c.mu.Lock()
	c.fn = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.fn = nil
		c.mu.Unlock()
	}
}

func (c *fakeClock) advance(seconds int) {
	for i := 0; i < seconds; i++ {
		c.mu.Lock()
		c.now = c.now.Add(time.Second)
		fn := c.fn
		c.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
}

// fakeChannel is an in-memory StateChannel. push simulates an update
// arriving from another session.
type fakeChannel struct {
	mu     sync.Mutex
	saves  []models.TimerState
	loaded *models.TimerState
	fn     func(models.TimerState)
}

func (f *fakeChannel) Save(ctx context.Context, state models.TimerState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, state)
	return nil
}

func (f *fakeChannel) Load(ctx context.Context, userID uuid.UUID) (*models.TimerState, error) {
	return f.loaded, nil
}

func (f *fakeChannel) Subscribe(ctx context.Context, userID uuid.UUID, fn func(models.TimerState)) (func(), error) {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
	return func() {}, nil
}

func (f *fakeChannel) push(state models.TimerState) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

func (f *fakeChannel) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

type recordedRun struct {
	userID uuid.UUID
	start  time.Time
	name   string
}

// recorderStub captures RecordIfSignificant calls on a channel so tests can
// wait for the asynchronous hand-off.
type recorderStub struct {
	calls chan recordedRun
}

func newRecorderStub() *recorderStub {
	return &recorderStub{calls: make(chan recordedRun, 8)}
}

func (r *recorderStub) RecordIfSignificant(ctx context.Context, userID uuid.UUID, start time.Time, name string) (*models.StudySession, error) {
	r.calls <- recordedRun{userID: userID, start: start, name: name}
	return nil, nil
}

func (r *recorderStub) waitForCall(t *testing.T) recordedRun {
	t.Helper()
	select {
	case call := <-r.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("expected a session record, got none")
		return recordedRun{}
	}
}

func (r *recorderStub) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case call := <-r.calls:
		t.Fatalf("unexpected session record: %+v", call)
	case <-time.After(50 * time.Millisecond):
	}
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock, *fakeChannel, *recorderStub) {
	t.Helper()
	clock := newFakeClock()
	channel := &fakeChannel{}
	recorder := newRecorderStub()

	e := New(uuid.New(), channel, recorder, clock, 25)
	if err := e.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e, clock, channel, recorder
}

func TestEngineTick_Countdown(t *testing.T) {
	e, clock, _, _ := newTestEngine(t)

	e.Start("")
	clock.advance(1)

	snap := e.Snapshot()
	if snap.Minutes != 24 || snap.Seconds != 59 {
		t.Errorf("Expected 24:59 after one tick, got %d:%02d", snap.Minutes, snap.Seconds)
	}

	// Seconds must stay within 0..59 across minute borrows.
	clock.advance(119)
	snap = e.Snapshot()
	if snap.Minutes != 23 || snap.Seconds != 0 {
		t.Errorf("Expected 23:00 after 120 ticks, got %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineStart_AlreadyRunningIsNoOp(t *testing.T) {
	e, clock, _, _ := newTestEngine(t)

	e.Start("first")
	clock.advance(30)
	e.Start("second")

	snap := e.Snapshot()
	if snap.Minutes != 24 || snap.Seconds != 30 {
		t.Errorf("Second start must not reset the countdown, got %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEnginePause_HandsRunToRecorder(t *testing.T) {
	e, clock, _, recorder := newTestEngine(t)
	startAt := clock.Now()

	e.Start("deep work")
	clock.advance(90)
	e.Pause()

	call := recorder.waitForCall(t)
	if !call.start.Equal(startAt) {
		t.Errorf("Expected run start %v, got %v", startAt, call.start)
	}
	if call.name != "deep work" {
		t.Errorf("Expected session name 'deep work', got %q", call.name)
	}

	snap := e.Snapshot()
	if snap.IsRunning {
		t.Error("Timer should not be running after pause")
	}
	if snap.Minutes != 23 || snap.Seconds != 30 {
		t.Errorf("Expected 23:30 remaining after 90s, got %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEnginePause_WhenIdleIsNoOp(t *testing.T) {
	e, _, _, recorder := newTestEngine(t)

	e.Pause()
	recorder.expectNoCall(t)
}

func TestEngineReset_RestoresConfiguredDuration(t *testing.T) {
	e, clock, _, recorder := newTestEngine(t)

	e.Start("")
	clock.advance(10)
	e.Reset()

	// The run still goes to the recorder; the noise floor lives there.
	recorder.waitForCall(t)

	snap := e.Snapshot()
	if snap.IsRunning {
		t.Error("Timer should not be running after reset")
	}
	if snap.Minutes != 25 || snap.Seconds != 0 {
		t.Errorf("Expected 25:00 after reset, got %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineExhaustion(t *testing.T) {
	e, clock, _, recorder := newTestEngine(t)

	if err := e.ApplyDuration(1); err != nil {
		t.Fatalf("ApplyDuration failed: %v", err)
	}
	e.Start("sprint")

	// 60 ticks reach 0:00; the next one detects exhaustion.
	clock.advance(61)

	call := recorder.waitForCall(t)
	if call.name != "sprint" {
		t.Errorf("Expected session name 'sprint', got %q", call.name)
	}

	snap := e.Snapshot()
	if snap.IsRunning {
		t.Error("Timer should stop at exhaustion")
	}
	if snap.Minutes != 0 || snap.Seconds != 0 {
		t.Errorf("Expected 0:00 at exhaustion, got %d:%02d", snap.Minutes, snap.Seconds)
	}

	// Further ticks must not drive the display negative.
	clock.advance(5)
	snap = e.Snapshot()
	if snap.Minutes != 0 || snap.Seconds != 0 {
		t.Errorf("Display moved after exhaustion: %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineApplyDuration(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		running bool
		wantErr error
	}{
		{"valid while idle", 45, false, nil},
		{"rejected while running", 45, true, ErrTimerRunning},
		{"zero minutes", 0, false, ErrInvalidMinutes},
		{"negative minutes", -5, false, ErrInvalidMinutes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _, _ := newTestEngine(t)
			if tc.running {
				e.Start("")
			}

			err := e.ApplyDuration(tc.minutes)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				snap := e.Snapshot()
				if snap.Minutes != tc.minutes || snap.Seconds != 0 {
					t.Errorf("Expected %d:00, got %d:%02d", tc.minutes, snap.Minutes, snap.Seconds)
				}
				if snap.CustomMinutes != tc.minutes {
					t.Errorf("Expected custom minutes %d, got %d", tc.minutes, snap.CustomMinutes)
				}
			}
		})
	}
}

func TestEngineOpen_SeedsFromSharedRecordWithoutResuming(t *testing.T) {
	clock := newFakeClock()
	channel := &fakeChannel{loaded: &models.TimerState{
		Minutes:       12,
		Seconds:       34,
		IsRunning:     true,
		CustomMinutes: 30,
	}}
	recorder := newRecorderStub()

	e := New(uuid.New(), channel, recorder, clock, 25)
	if err := e.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	snap := e.Snapshot()
	if snap.Minutes != 12 || snap.Seconds != 34 || snap.CustomMinutes != 30 {
		t.Errorf("Expected seeded 12:34 (custom 30), got %d:%02d (custom %d)", snap.Minutes, snap.Seconds, snap.CustomMinutes)
	}
	if snap.IsRunning {
		t.Error("Countdown must not auto-resume from the stored running flag")
	}

	// The stored flag alone never ticks the display.
	clock.advance(3)
	snap = e.Snapshot()
	if snap.Minutes != 12 || snap.Seconds != 34 {
		t.Errorf("Display moved without a start: %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineApplyRemote_SameDisplayIsNoOp(t *testing.T) {
	e, clock, channel, _ := newTestEngine(t)

	before := channel.saveCount()
	channel.push(models.TimerState{
		UserID:        e.userID,
		Minutes:       25,
		Seconds:       0,
		IsRunning:     false,
		CustomMinutes: 25,
		LastUpdated:   clock.Now().UnixMilli(),
	})

	snap := e.Snapshot()
	if snap.Minutes != 25 || snap.Seconds != 0 || snap.IsRunning {
		t.Errorf("Value-equal update changed state: %+v", snap)
	}
	if channel.saveCount() != before {
		t.Error("Value-equal update must not trigger a mirror write")
	}

	// An echo of our own write is value-equal by construction and must not
	// restart anything.
	clock.advance(2)
	snap = e.Snapshot()
	if snap.Minutes != 25 || snap.Seconds != 0 {
		t.Errorf("Echo started the countdown: %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineApplyRemote_StartFromAnotherSession(t *testing.T) {
	e, clock, channel, _ := newTestEngine(t)

	channel.push(models.TimerState{
		UserID:        e.userID,
		Minutes:       25,
		Seconds:       0,
		IsRunning:     true,
		CustomMinutes: 25,
	})

	snap := e.Snapshot()
	if !snap.IsRunning {
		t.Fatal("Remote start should set the local timer running")
	}

	clock.advance(1)
	snap = e.Snapshot()
	if snap.Minutes != 24 || snap.Seconds != 59 {
		t.Errorf("Expected local ticking after remote start, got %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineApplyRemote_PauseDoesNotRecord(t *testing.T) {
	e, clock, channel, recorder := newTestEngine(t)

	e.Start("mine")
	clock.advance(90)

	// Another session paused; it owns the record for this run.
	channel.push(models.TimerState{
		UserID:        e.userID,
		Minutes:       23,
		Seconds:       30,
		IsRunning:     false,
		CustomMinutes: 25,
	})

	recorder.expectNoCall(t)

	snap := e.Snapshot()
	if snap.IsRunning {
		t.Error("Remote pause should stop the local timer")
	}
	if snap.Minutes != 23 || snap.Seconds != 30 {
		t.Errorf("Expected remote display 23:30, got %d:%02d", snap.Minutes, snap.Seconds)
	}

	clock.advance(3)
	snap = e.Snapshot()
	if snap.Minutes != 23 || snap.Seconds != 30 {
		t.Errorf("Timer kept ticking after remote pause: %d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestEngineMirror_CarriesDisplayValues(t *testing.T) {
	e, _, channel, _ := newTestEngine(t)

	e.Start("")

	// Mirror writes are fire-and-forget; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for channel.saveCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	channel.mu.Lock()
	defer channel.mu.Unlock()
	if len(channel.saves) == 0 {
		t.Fatal("Expected a mirror write after start")
	}
	saved := channel.saves[0]
	if saved.UserID != e.userID {
		t.Errorf("Mirror carried wrong user: %s", saved.UserID)
	}
	if !saved.IsRunning || saved.Minutes != 25 || saved.Seconds != 0 {
		t.Errorf("Mirror carried wrong display: %+v", saved)
	}
}
