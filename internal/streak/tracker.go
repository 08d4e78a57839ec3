package streak

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// Tracker owns the live streak and keeps the store in step with it.
type Tracker struct {
	kv     KV
	now    func() time.Time
	logger *slog.Logger

	state State
	// set when the last write failed; Refresh retries it
	dirty bool
	// baseline for which a clock anomaly was already logged
	warnedFor *time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

func NewTracker(kv KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:     kv,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init loads the persisted streak, reconciles it with the clock and writes
// the result back. Unreadable state is logged and replaced by defaults.
func (t *Tracker) Init() State {
	st, err := Load(t.kv)
	if err != nil {
		var malformed *MalformedStateError
		switch {
		case errors.As(err, &malformed) && malformed.Key == RecordKey:
			t.logger.Warn("ignoring malformed legacy record", "key", malformed.Key, "error", malformed.Err)
			st.Record = 0
		case malformed != nil:
			t.logger.Warn("discarding malformed streak state", "key", malformed.Key, "error", malformed.Err)
			st = State{}
		default:
			t.logger.Error("failed to load streak state", "error", err)
			st = State{}
		}
	}
	t.state = Recompute(st, t.now())
	t.checkClock()
	t.persist()
	t.logger.Info("streak loaded", "days", t.state.Days, "record", t.state.Record, "reset", t.state.LastReset != nil)
	return t.State()
}

// Refresh recomputes against the current time and persists when the
// derived values moved or an earlier write is still pending. It reports
// whether anything changed.
func (t *Tracker) Refresh() (State, bool) {
	next := Recompute(t.state, t.now())
	if next.Equal(t.state) {
		if t.dirty {
			t.persist()
		}
		return t.State(), false
	}
	t.state = next
	t.checkClock()
	t.persist()
	t.logger.Debug("streak advanced", "days", t.state.Days, "record", t.state.Record)
	return t.State(), true
}

// ReportIrritation resets the streak to zero at the current time. When the
// write fails the reset still stands in memory and the next Refresh retries it.
func (t *Tracker) ReportIrritation() (State, error) {
	prev := t.state.Days
	t.state = Reset(t.state, t.now())
	t.warnedFor = nil
	if err := Save(t.kv, t.state); err != nil {
		t.dirty = true
		return t.State(), err
	}
	t.dirty = false
	t.logger.Info("streak reset", "previous_days", prev, "record", t.state.Record)
	return t.State(), nil
}

func (t *Tracker) persist() {
	if err := Save(t.kv, t.state); err != nil {
		t.dirty = true
		t.logger.Error("failed to save streak state", "error", err)
		return
	}
	t.dirty = false
}

// State returns a copy of the current streak.
func (t *Tracker) State() State {
	return t.state.clone()
}

func (t *Tracker) checkClock() {
	lr := t.state.LastReset
	if lr == nil || !t.now().Before(*lr) {
		return
	}
	if t.warnedFor != nil && t.warnedFor.Equal(*lr) {
		return
	}
	b := *lr
	t.warnedFor = &b
	t.logger.Warn("clock is behind last reset", "last_reset", lr.UTC().Format(time.RFC3339), "days", t.state.Days)
}
