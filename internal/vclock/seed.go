package vclock

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/text/unicode/norm"
)

// seedDomain is the domain prefix for per-event draw derivation.
// The version suffix enables future algorithm migration: changing the
// derivation in any way requires a new domain, since golden traces pin
// the exact output of this one.
const seedDomain = "socsim/event-seed/v1"

// deriveDraw computes the deterministic 64-bit draw for one synthesis
// call.
//
// Layout: SHA-256(domain || 0x00 || seed || tick || actor || index || hint)
// with the four integers big-endian fixed width and the hint NFC
// normalized, so canonically equivalent hint strings derive the same
// draw. The null separator prevents domain/payload boundary ambiguity.
// The first 8 digest bytes, big-endian, are the draw.
//
// A language-default hash would not survive process restarts or
// version bumps; this derivation is pinned so replays and golden
// traces stay stable across runs and implementations.
func deriveDraw(seed, tick, actorID, callIndex int64, hint string) uint64 {
	h := sha256.New()
	h.Write([]byte(seedDomain))
	h.Write([]byte{0x00})

	var fields [32]byte
	binary.BigEndian.PutUint64(fields[0:8], uint64(seed))
	binary.BigEndian.PutUint64(fields[8:16], uint64(tick))
	binary.BigEndian.PutUint64(fields[16:24], uint64(actorID))
	binary.BigEndian.PutUint64(fields[24:32], uint64(callIndex))
	h.Write(fields[:])

	h.Write([]byte(norm.NFC.String(hint)))

	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
