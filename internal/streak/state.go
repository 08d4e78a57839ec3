package streak

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Keys under which the streak is persisted.
const (
	StateKey  = "diasSemIrritarConecriu"
	RecordKey = "recordePessoal" // legacy scalar, read-only
)

// Day is the length of one streak day.
const Day = 24 * time.Hour

// KV is the persistence capability the tracker needs. Last write wins.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// State is the streak as seen by the presentation layer.
type State struct {
	Days      int
	LastReset *time.Time // nil means never reset
	Record    int
}

// persisted is the JSON shape stored under StateKey.
type persisted struct {
	Days      int     `json:"dias"`
	LastReset *string `json:"ultimaData"`
	Record    *int    `json:"recorde,omitempty"`
}

// Load reads the streak from kv. A missing key yields the zero State. An
// unreadable legacy record is reported alongside the decoded streak, which
// stays usable with a record of zero.
func Load(kv KV) (State, error) {
	raw, ok, err := kv.Get(StateKey)
	if err != nil {
		return State{}, fmt.Errorf("read %s: %w", StateKey, err)
	}
	var st State
	var recordSet bool
	if ok {
		var p persisted
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return State{}, &MalformedStateError{Key: StateKey, Err: err}
		}
		st.Days = p.Days
		if p.LastReset != nil && *p.LastReset != "" {
			t, err := time.Parse(time.RFC3339Nano, *p.LastReset)
			if err != nil {
				return State{}, &MalformedStateError{Key: StateKey, Err: err}
			}
			st.LastReset = &t
		}
		if p.Record != nil {
			st.Record = *p.Record
			recordSet = true
		}
	}
	if !recordSet {
		rec, err := loadLegacyRecord(kv)
		if err != nil {
			return st, err
		}
		st.Record = rec
	}
	return st, nil
}

func loadLegacyRecord(kv KV) (int, error) {
	raw, ok, err := kv.Get(RecordKey)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", RecordKey, err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &MalformedStateError{Key: RecordKey, Err: err}
	}
	return n, nil
}

// Save writes st under StateKey. Nothing is written until the streak has
// been reset at least once.
func Save(kv KV, st State) error {
	if st.LastReset == nil {
		return nil
	}
	ts := st.LastReset.UTC().Format(time.RFC3339Nano)
	rec := st.Record
	data, err := json.Marshal(persisted{Days: st.Days, LastReset: &ts, Record: &rec})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := kv.Set(StateKey, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", StateKey, err)
	}
	return nil
}

// Recompute derives Days from LastReset at now and folds it into Record.
// Without a baseline Days keeps its loaded value.
func Recompute(st State, now time.Time) State {
	out := st.clone()
	if out.LastReset != nil {
		out.Days = ElapsedDays(*out.LastReset, now)
	}
	out.Record = max(out.Record, out.Days)
	return out
}

// Reset starts a new streak at now. Record is left alone.
func Reset(st State, now time.Time) State {
	out := st.clone()
	t := now
	out.LastReset = &t
	out.Days = 0
	return out
}

// ElapsedDays returns floor((now-since)/Day) on millisecond resolution.
// It goes negative when now is before since.
func ElapsedDays(since, now time.Time) int {
	ms := now.Sub(since).Milliseconds()
	const dayMs = int64(Day / time.Millisecond)
	d := ms / dayMs
	if ms%dayMs != 0 && ms < 0 {
		d--
	}
	return int(d)
}

// Equal reports whether two states describe the same streak.
func (s State) Equal(o State) bool {
	if s.Days != o.Days || s.Record != o.Record {
		return false
	}
	if s.LastReset == nil || o.LastReset == nil {
		return s.LastReset == nil && o.LastReset == nil
	}
	return s.LastReset.Equal(*o.LastReset)
}

func (s State) clone() State {
	if s.LastReset != nil {
		t := *s.LastReset
		s.LastReset = &t
	}
	return s
}
