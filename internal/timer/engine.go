package timer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"nekomate-backend/internal/models"
)

var (
	ErrTimerRunning   = errors.New("timer duration cannot be changed while running")
	ErrInvalidMinutes = errors.New("timer duration must be at least 1 minute")
)

const mirrorTimeout = 5 * time.Second

// SessionRecorder persists a completed focus run if it is long enough to
// matter. Implemented by analytics.Ledger.
type SessionRecorder interface {
	RecordIfSignificant(ctx context.Context, userID uuid.UUID, start time.Time, name string) (*models.StudySession, error)
}

// Engine is the countdown state machine for one user. Local state is
// authoritative for this process; every mutation is mirrored to the shared
// StateChannel so other sessions of the same user converge on the same
// display. Remote updates are applied idempotently: an update carrying the
// values we already show is a no-op, which also neutralizes echoes of our
// own writes.
type Engine struct {
	mu     sync.Mutex
	userID uuid.UUID

	minutes       int
	seconds       int
	running       bool
	customMinutes int

	// Wall-clock moment this session entered Running; zero when no run is
	// in progress. Each session tracks its own start, so concurrent
	// sessions log independent records.
	sessionStart time.Time
	sessionName  string

	clock    Clock
	remote   StateChannel
	recorder SessionRecorder

	stopTick func()
	unsub    func()
	closed   bool
}

func New(userID uuid.UUID, remote StateChannel, recorder SessionRecorder, clock Clock, defaultMinutes int) *Engine {
	if defaultMinutes < 1 {
		defaultMinutes = 25
	}
	return &Engine{
		userID:        userID,
		minutes:       defaultMinutes,
		seconds:       0,
		customMinutes: defaultMinutes,
		clock:         clock,
		remote:        remote,
		recorder:      recorder,
	}
}

// Open seeds the engine from the shared record and starts listening for
// remote changes. A missing or unreadable record leaves the defaults in
// place. The countdown is never auto-resumed from the stored flag; a later
// remote update with is_running=true starts it.
func (e *Engine) Open(ctx context.Context) error {
	state, err := e.remote.Load(ctx, e.userID)
	if err != nil {
		log.Printf("timer: loading state for user %s: %v", e.userID, err)
	} else if state != nil {
		e.mu.Lock()
		e.minutes = state.Minutes
		e.seconds = state.Seconds
		if state.CustomMinutes >= 1 {
			e.customMinutes = state.CustomMinutes
		}
		e.mu.Unlock()
	}

	unsub, err := e.remote.Subscribe(ctx, e.userID, e.applyRemote)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.unsub = unsub
	e.mu.Unlock()
	return nil
}

// Close releases the tick schedule and the remote subscription. A run in
// progress is not logged; the janitor clears the stale shared record.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.stopTickLocked()
	unsub := e.unsub
	e.unsub = nil
	e.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Start begins (or resumes) the countdown, re-arming a fresh local start
// reference. Starting an already-running timer is a no-op.
func (e *Engine) Start(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.running {
		return
	}

	e.running = true
	e.sessionStart = e.clock.Now()
	e.sessionName = name
	e.startTickLocked()
	e.mirrorLocked()
}

// Pause stops the countdown, keeping the remaining time, and logs the run
// that just ended.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.running {
		return
	}

	e.running = false
	e.stopTickLocked()
	e.completeSessionLocked()
	e.mirrorLocked()
}

// Reset restores the configured duration. A run in progress is logged
// before the remaining time is discarded.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	if e.running {
		e.completeSessionLocked()
	}
	e.running = false
	e.stopTickLocked()
	e.minutes = e.customMinutes
	e.seconds = 0
	e.sessionStart = time.Time{}
	e.sessionName = ""
	e.mirrorLocked()
}

// ApplyDuration sets the configured minutes and resets the remaining time
// to match. Rejected while the countdown is running.
func (e *Engine) ApplyDuration(minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	if e.running {
		return ErrTimerRunning
	}
	if minutes < 1 {
		return ErrInvalidMinutes
	}

	e.customMinutes = minutes
	e.minutes = minutes
	e.seconds = 0
	e.sessionStart = time.Time{}
	e.mirrorLocked()
	return nil
}

// Snapshot returns the current display values.
func (e *Engine) Snapshot() models.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() models.TimerState {
	return models.TimerState{
		UserID:        e.userID,
		Minutes:       e.minutes,
		Seconds:       e.seconds,
		IsRunning:     e.running,
		CustomMinutes: e.customMinutes,
		LastUpdated:   e.clock.Now().UnixMilli(),
	}
}

// tick runs once per second of wall-clock time while the countdown is
// running. Seconds underflow borrows a minute; reaching 00:00 while running
// is exhaustion, detected locally by each session.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.running {
		return
	}

	switch {
	case e.seconds > 0:
		e.seconds--
	case e.minutes > 0:
		e.minutes--
		e.seconds = 59
	default:
		e.running = false
		e.stopTickLocked()
		e.completeSessionLocked()
	}
	e.mirrorLocked()
}

// applyRemote folds a shared-record update from another session into local
// state. Value-equal updates are observable no-ops. A remote pause stops
// the local tick without logging; the session that performed the pause owns
// the record for that run.
func (e *Engine) applyRemote(state models.TimerState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if state.SameDisplay(e.snapshotLocked()) {
		return
	}

	wasRunning := e.running
	e.minutes = state.Minutes
	e.seconds = state.Seconds
	e.running = state.IsRunning
	if state.CustomMinutes >= 1 {
		e.customMinutes = state.CustomMinutes
	}

	if state.IsRunning && !wasRunning {
		e.sessionStart = e.clock.Now()
		e.startTickLocked()
	} else if !state.IsRunning && wasRunning {
		e.stopTickLocked()
		e.sessionStart = time.Time{}
		e.sessionName = ""
	}
}

func (e *Engine) startTickLocked() {
	if e.stopTick != nil {
		return
	}
	e.stopTick = e.clock.EverySecond(e.tick)
}

func (e *Engine) stopTickLocked() {
	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
	}
}

// completeSessionLocked hands the run that just ended to the recorder and
// clears the start reference. The append happens off the lock; a failed
// write is logged and dropped, never fed back into timer state.
func (e *Engine) completeSessionLocked() {
	if e.sessionStart.IsZero() {
		return
	}
	start := e.sessionStart
	name := e.sessionName
	e.sessionStart = time.Time{}
	e.sessionName = ""

	userID := e.userID
	recorder := e.recorder
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if _, err := recorder.RecordIfSignificant(ctx, userID, start, name); err != nil {
			log.Printf("timer: recording session for user %s: %v", userID, err)
		}
	}()
}

// mirrorLocked schedules a fire-and-forget overwrite of the shared record.
// A failed write only means other sessions see stale state until the next
// successful one; local state is never rolled back.
func (e *Engine) mirrorLocked() {
	state := e.snapshotLocked()
	remote := e.remote
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := remote.Save(ctx, state); err != nil {
			log.Printf("timer: mirroring state for user %s: %v", state.UserID, err)
		}
	}()
}
