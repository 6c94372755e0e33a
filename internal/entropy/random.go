// Package entropy seeds the pseudo-random sources used for ordering.
// Seeds come from crypto/rand so runs are not reproducible by default.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
	"time"
)

// Seed returns a 63-bit seed from crypto/rand. Falls back to the wall clock
// if the system source fails.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		slog.Warn("crypto/rand unavailable, seeding from clock", "error", err)
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

// NewRand returns a math/rand generator. seed 0 means draw one from Seed.
func NewRand(seed int64) *mrand.Rand {
	if seed == 0 {
		seed = Seed()
	}
	return mrand.New(mrand.NewSource(seed))
}
