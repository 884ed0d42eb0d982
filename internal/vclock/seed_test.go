package vclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pinned derivation values. These guard the versioned mix function:
// if any of them change, the domain string must be bumped and golden
// traces regenerated.
func TestDeriveDraw_Pinned(t *testing.T) {
	tests := []struct {
		name      string
		seed      int64
		tick      int64
		actor     int64
		callIndex int64
		hint      string
		want      uint64
	}{
		{"default post", 42, 0, 1, 0, "create_post", 6836992334249966046},
		{"default comment", 42, 0, 2, 0, "comment", 14915266832467096456},
		{"negative actor", 42, 0, -3, 0, "", 7143525355035674042},
		{"tick 1", 42, 1, 1, 0, "", 3037417113457965057},
		{"other seed", 7, 0, 1, 0, "x", 13516721921415367276},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveDraw(tt.seed, tt.tick, tt.actor, tt.callIndex, tt.hint)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveDraw_NFCEquivalentHints(t *testing.T) {
	composed := deriveDraw(42, 0, 1, 0, "café")
	decomposed := deriveDraw(42, 0, 1, 0, "café")
	assert.Equal(t, composed, decomposed,
		"canonically equivalent hints must derive the same draw")
}

func TestDeriveDraw_InputsDiversify(t *testing.T) {
	base := deriveDraw(42, 0, 1, 0, "create_post")

	assert.NotEqual(t, base, deriveDraw(43, 0, 1, 0, "create_post"), "seed")
	assert.NotEqual(t, base, deriveDraw(42, 1, 1, 0, "create_post"), "tick")
	assert.NotEqual(t, base, deriveDraw(42, 0, 2, 0, "create_post"), "actor")
	assert.NotEqual(t, base, deriveDraw(42, 0, 1, 1, "create_post"), "call index")
	assert.NotEqual(t, base, deriveDraw(42, 0, 1, 0, "comment"), "hint")
}

// Pinned end-to-end values for the default configuration. Matches the
// harness golden trace.
func TestEventTime_PinnedSequence(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	t0 := c.EventTime(1, "create_post")
	assert.Equal(t, int64(62046), t0)

	t1 := c.EventTimeAfter(2, t0, "comment")
	assert.Equal(t, int64(81609), t1)

	require.NoError(t, c.Advance(1))
	assert.Equal(t, int64(150657), c.EventTime(1, ""))
}
