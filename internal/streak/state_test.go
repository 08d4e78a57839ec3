package streak

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memKV is a map-backed KV for tests.
type memKV map[string]string

func (m memKV) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

// ============================================================
// Load
// ============================================================

func TestLoadEmptyStore(t *testing.T) {
	st, err := Load(memKV{})
	require.NoError(t, err)
	require.Equal(t, 0, st.Days)
	require.Nil(t, st.LastReset)
	require.Equal(t, 0, st.Record)
}

func TestLoadDecodesRecord(t *testing.T) {
	kv := memKV{StateKey: `{"dias":3,"ultimaData":"2024-01-01T00:00:00Z","recorde":9}`}
	st, err := Load(kv)
	require.NoError(t, err)
	require.Equal(t, 3, st.Days)
	require.NotNil(t, st.LastReset)
	require.True(t, st.LastReset.Equal(mustTime(t, "2024-01-01T00:00:00Z")))
	require.Equal(t, 9, st.Record)
}

func TestLoadAcceptsMillisecondTimestamps(t *testing.T) {
	kv := memKV{StateKey: `{"dias":0,"ultimaData":"2024-03-05T10:11:12.345Z"}`}
	st, err := Load(kv)
	require.NoError(t, err)
	require.Equal(t, 345*int(time.Millisecond), st.LastReset.Nanosecond())
}

func TestLoadNullTimestampKeepsDays(t *testing.T) {
	st, err := Load(memKV{StateKey: `{"dias":4,"ultimaData":null}`})
	require.NoError(t, err)
	require.Equal(t, 4, st.Days)
	require.Nil(t, st.LastReset)
}

func TestLoadEmptyTimestampKeepsDays(t *testing.T) {
	st, err := Load(memKV{StateKey: `{"dias":4,"ultimaData":""}`})
	require.NoError(t, err)
	require.Equal(t, 4, st.Days)
	require.Nil(t, st.LastReset)
}

func TestLoadBadLegacyRecordKeepsStreak(t *testing.T) {
	kv := memKV{
		StateKey:  `{"dias":2,"ultimaData":"2024-01-01T00:00:00.000Z"}`,
		RecordKey: "abc",
	}
	st, err := Load(kv)
	require.ErrorIs(t, err, ErrMalformedState)
	require.Equal(t, 2, st.Days)
	require.NotNil(t, st.LastReset)
	require.True(t, st.LastReset.Equal(mustTime(t, "2024-01-01T00:00:00Z")))
	require.Zero(t, st.Record)
}

func TestLoadFallsBackToLegacyRecord(t *testing.T) {
	kv := memKV{
		StateKey:  `{"dias":1,"ultimaData":"2024-01-01T00:00:00Z"}`,
		RecordKey: "12",
	}
	st, err := Load(kv)
	require.NoError(t, err)
	require.Equal(t, 12, st.Record)
}

func TestLoadPrefersEmbeddedRecord(t *testing.T) {
	kv := memKV{
		StateKey:  `{"dias":1,"ultimaData":"2024-01-01T00:00:00Z","recorde":5}`,
		RecordKey: "12",
	}
	st, err := Load(kv)
	require.NoError(t, err)
	require.Equal(t, 5, st.Record)
}

func TestLoadLegacyRecordWithoutMainKey(t *testing.T) {
	st, err := Load(memKV{RecordKey: "7"})
	require.NoError(t, err)
	require.Equal(t, 7, st.Record)
	require.Nil(t, st.LastReset)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		kv   memKV
		key  string
	}{
		{"bad json", memKV{StateKey: `{"dias":`}, StateKey},
		{"days not integer", memKV{StateKey: `{"dias":"three"}`}, StateKey},
		{"fractional days", memKV{StateKey: `{"dias":1.5}`}, StateKey},
		{"bad timestamp", memKV{StateKey: `{"dias":0,"ultimaData":"yesterday"}`}, StateKey},
		{"timestamp not string", memKV{StateKey: `{"dias":0,"ultimaData":17}`}, StateKey},
		{"legacy record not integer", memKV{RecordKey: "lots"}, RecordKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.kv)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformedState)

			var malformed *MalformedStateError
			require.True(t, errors.As(err, &malformed))
			require.Equal(t, tt.key, malformed.Key)
		})
	}
}

// ============================================================
// Recompute
// ============================================================

func TestRecomputeFloorsElapsedDays(t *testing.T) {
	base := mustTime(t, "2024-01-01T00:00:00Z")
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"same instant", 0, 0},
		{"one ms short of a day", Day - time.Millisecond, 0},
		{"exactly one day", Day, 1},
		{"two days three hours", 2*Day + 3*time.Hour, 2},
		{"one year", 365 * Day, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Recompute(State{LastReset: &base}, base.Add(tt.elapsed))
			require.Equal(t, tt.want, st.Days)
		})
	}
}

func TestRecomputeWeekScenario(t *testing.T) {
	kv := memKV{StateKey: `{"dias":0,"ultimaData":"2024-01-01T00:00:00Z"}`}
	st, err := Load(kv)
	require.NoError(t, err)

	st = Recompute(st, mustTime(t, "2024-01-08T00:00:00Z"))
	require.Equal(t, 7, st.Days)
}

func TestRecomputeWithoutBaselineKeepsDays(t *testing.T) {
	st := Recompute(State{Days: 4}, time.Now())
	require.Equal(t, 4, st.Days)
	require.Nil(t, st.LastReset)
}

func TestRecomputeIdempotent(t *testing.T) {
	base := mustTime(t, "2024-01-01T00:00:00Z")
	now := base.Add(50 * time.Hour)
	once := Recompute(State{LastReset: &base, Record: 1}, now)
	twice := Recompute(once, now)
	require.True(t, once.Equal(twice))
}

func TestRecomputeRaisesRecord(t *testing.T) {
	base := mustTime(t, "2024-01-01T00:00:00Z")
	st := Recompute(State{LastReset: &base, Record: 3}, base.Add(10*Day))
	require.Equal(t, 10, st.Record)

	st = Recompute(State{LastReset: &base, Record: 30}, base.Add(10*Day))
	require.Equal(t, 30, st.Record, "record never decreases")
}

func TestRecomputeClockSkewGoesNegative(t *testing.T) {
	base := mustTime(t, "2024-01-10T00:00:00Z")
	st := Recompute(State{LastReset: &base}, base.Add(-time.Hour))
	require.Equal(t, -1, st.Days)
	require.Equal(t, 0, st.Record)

	st = Recompute(State{LastReset: &base}, base.Add(-2*Day))
	require.Equal(t, -2, st.Days)
}

func TestRecomputeDoesNotAliasInput(t *testing.T) {
	base := mustTime(t, "2024-01-01T00:00:00Z")
	in := State{LastReset: &base}
	out := Recompute(in, base.Add(Day))
	*out.LastReset = out.LastReset.Add(time.Hour)
	require.True(t, in.LastReset.Equal(mustTime(t, "2024-01-01T00:00:00Z")))
}

// ============================================================
// Reset
// ============================================================

func TestResetZeroesStreak(t *testing.T) {
	old := mustTime(t, "2023-06-01T00:00:00Z")
	now := mustTime(t, "2024-02-02T12:00:00Z")

	for _, prior := range []State{
		{},
		{Days: 40, LastReset: &old, Record: 40},
		{Days: -3, LastReset: &old},
	} {
		st := Reset(prior, now)
		require.Equal(t, 0, st.Days)
		require.NotNil(t, st.LastReset)
		require.True(t, st.LastReset.Equal(now))
		require.Equal(t, prior.Record, st.Record)
	}
}

func TestResetThenRecomputeSameInstant(t *testing.T) {
	now := mustTime(t, "2024-02-02T12:00:00Z")
	st := Recompute(Reset(State{Days: 9}, now), now)
	require.Equal(t, 0, st.Days)
}

// ============================================================
// Save
// ============================================================

func TestSaveSkipsWithoutBaseline(t *testing.T) {
	kv := memKV{}
	require.NoError(t, Save(kv, State{Days: 4, Record: 4}))
	require.Empty(t, kv)
}

func TestSaveWireFormat(t *testing.T) {
	base := mustTime(t, "2024-01-01T00:00:00Z")
	kv := memKV{}
	require.NoError(t, Save(kv, State{Days: 2, LastReset: &base, Record: 6}))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(kv[StateKey]), &got))
	require.Equal(t, float64(2), got["dias"])
	require.Equal(t, "2024-01-01T00:00:00Z", got["ultimaData"])
	require.Equal(t, float64(6), got["recorde"])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	base := time.Date(2024, 5, 6, 7, 8, 9, 123456789, loc)
	now := base.Add(3*Day + time.Hour)

	kv := memKV{}
	st := Recompute(State{LastReset: &base}, now)
	require.NoError(t, Save(kv, st))

	loaded, err := Load(kv)
	require.NoError(t, err)
	require.True(t, st.Equal(loaded))
	require.True(t, st.Equal(Recompute(loaded, now)))
}

func TestElapsedDays(t *testing.T) {
	base := mustTime(t, "2024-01-01T00:00:00Z")
	require.Equal(t, 0, ElapsedDays(base, base))
	require.Equal(t, 1, ElapsedDays(base, base.Add(36*time.Hour)))
	require.Equal(t, -1, ElapsedDays(base, base.Add(-time.Millisecond)))
	require.Equal(t, -1, ElapsedDays(base, base.Add(-Day)))
	require.Equal(t, -2, ElapsedDays(base, base.Add(-Day-time.Millisecond)))
}
