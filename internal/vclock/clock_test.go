package vclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, int64(0), c.Tick(), "new clock should start at tick 0")

	start, end := c.TickRange()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(86399), end)
}

func TestNew_RejectsNonPositiveTickDuration(t *testing.T) {
	_, err := New(WithTickDuration(0))
	assert.Error(t, err, "zero tick duration should be rejected")

	_, err = New(WithTickDuration(-86400))
	assert.Error(t, err, "negative tick duration should be rejected")
}

func TestAdvance_MovesTickForward(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	require.NoError(t, c.Advance(1))
	assert.Equal(t, int64(1), c.Tick())

	require.NoError(t, c.Advance(3))
	assert.Equal(t, int64(4), c.Tick())

	start, end := c.TickRange()
	assert.Equal(t, int64(4*86400), start)
	assert.Equal(t, int64(5*86400-1), end)
}

func TestAdvance_RejectsNonPositiveCount(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Error(t, c.Advance(0))
	assert.Error(t, c.Advance(-1))
	assert.Equal(t, int64(0), c.Tick(), "failed advance must not move the tick")
}

// Scenario: a post and a comment on it within the same tick.
func TestEventTime_PostThenComment(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	t0 := c.EventTime(1, "create_post")
	assert.GreaterOrEqual(t, t0, int64(0))
	assert.LessOrEqual(t, t0, int64(86399))

	t1 := c.EventTimeAfter(2, t0, "comment")
	assert.Greater(t, t1, t0, "comment must be strictly after its parent")
	assert.LessOrEqual(t, t1, int64(86399))
}

func TestEventTime_AfterAdvanceLandsInNextTick(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Advance(1))

	ts := c.EventTime(1, "")
	assert.GreaterOrEqual(t, ts, int64(86400))
	assert.LessOrEqual(t, ts, int64(172799))
}

func TestEventTimeAfter_ParentOverflowSpillsPastBoundary(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	// Parent at the last second of tick 0: no room left in range.
	ts := c.EventTimeAfter(7, 86399, "comment")
	assert.Equal(t, int64(86400), ts)

	// Parent already past the boundary still yields parent+1.
	ts = c.EventTimeAfter(7, 100000, "comment")
	assert.Equal(t, int64(100001), ts)
}

func TestEventTime_Deterministic(t *testing.T) {
	run := func() []int64 {
		c, err := New(WithSeed(1234))
		require.NoError(t, err)

		var out []int64
		t0 := c.EventTime(1, "create_post")
		out = append(out, t0)
		out = append(out, c.EventTimeAfter(2, t0, "comment"))
		out = append(out, c.EventTime(1, "create_post"))
		out = append(out, c.EventTime(-5, ""))
		require.NoError(t, c.Advance(1))
		out = append(out, c.EventTime(3, "like_post"))
		return out
	}

	assert.Equal(t, run(), run(), "identical call sequences must yield identical timestamps")
}

func TestEventTime_UniqueWithinTick(t *testing.T) {
	c, err := New(WithSeed(9))
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for actor := int64(0); actor < 10; actor++ {
		for i := 0; i < 50; i++ {
			ts := c.EventTime(actor, "create_post")
			assert.False(t, seen[ts], "timestamp %d issued twice in one tick", ts)
			seen[ts] = true
		}
	}
}

func TestEventTime_SameActorSameTickDiverges(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	a := c.EventTime(1, "create_post")
	b := c.EventTime(1, "create_post")
	assert.NotEqual(t, a, b, "repeat calls for one actor must diverge via the call index")
}

func TestEventTime_TinyRangeFillsCompletely(t *testing.T) {
	c, err := New(WithTickDuration(3))
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for actor := int64(1); actor <= 3; actor++ {
		seen[c.EventTime(actor, "")] = true
	}
	assert.Equal(t, map[int64]bool{0: true, 1: true, 2: true}, seen,
		"three events in a 3-second tick must occupy the whole range")

	// Range is provably full: the collision is tolerated, not an error.
	ts := c.EventTime(4, "")
	assert.GreaterOrEqual(t, ts, int64(0))
	assert.LessOrEqual(t, ts, int64(2))
}

func TestEventTime_NegativeActorAndEmptyHint(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	ts := c.EventTime(-3, "")
	assert.Equal(t, int64(16442), ts)
}

func TestReset_ReproducesFreshClock(t *testing.T) {
	sequence := func(t *testing.T, c *Clock) []int64 {
		t.Helper()
		var out []int64
		t0 := c.EventTime(1, "create_post")
		out = append(out, t0)
		out = append(out, c.EventTimeAfter(2, t0, "comment"))
		require.NoError(t, c.Advance(2))
		out = append(out, c.EventTime(1, "repost"))
		return out
	}

	fresh, err := New()
	require.NoError(t, err)
	want := sequence(t, fresh)

	reused, err := New()
	require.NoError(t, err)
	sequence(t, reused)
	require.NoError(t, reused.Advance(4))
	reused.Reset()
	assert.Equal(t, int64(0), reused.Tick())
	assert.Equal(t, want, sequence(t, reused), "reset clock must reproduce a fresh clock's outputs")
}

func TestToISO_DefaultEpoch(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01 00:00:00", c.ToISO(0))
	assert.Equal(t, "2024-01-02 00:00:00", c.ToISO(86400))
	assert.Equal(t, "2024-01-01 00:01:05", c.ToISO(65))
}

func TestCalendarRoundTrip(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	for _, v := range []int64{0, 1, 59, 86399, 86400, 31536000} {
		assert.Equal(t, v, c.FromTime(c.ToTime(v)), "round trip for %d", v)
	}
}

func TestFromTime_TruncatesSubSecond(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	instant := DefaultEpoch.Add(10*time.Second + 900*time.Millisecond)
	assert.Equal(t, int64(10), c.FromTime(instant))
}

func TestCustomEpoch(t *testing.T) {
	epoch := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	c, err := New(WithEpoch(epoch))
	require.NoError(t, err)

	assert.Equal(t, "2030-06-15 12:00:30", c.ToISO(30))
	assert.Equal(t, int64(3600), c.FromTime(epoch.Add(time.Hour)))
}

func TestString(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Advance(1))

	assert.Equal(t,
		"Clock(tick=1, tick_duration_s=86400, current_range=[86400, 172799])",
		c.String())
}
