// Package math32 provides the scalar float32 vector primitives the rest of
// the engine is built on: squared Euclidean distance, true Euclidean
// distance, dot product, and a seeded pseudorandom generator factory.
//
// All functions assume their arguments are equal length; callers guarantee
// this by construction (store and index code never calls across mismatched
// dimensions). The distance and dot-product functions do not allocate.
package math32

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
)

// SquaredL2 returns the squared Euclidean distance between a and b.
// This is the workhorse used everywhere sort order matters; it avoids the
// sqrt that Euclidean needs.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean returns the true Euclidean distance between a and b.
func Euclidean(a, b []float32) float32 {
	return float32(math.Sqrt(float64(SquaredL2(a, b))))
}

// Dot returns the dot product of a and b.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// NewRNG returns a *rand.Rand seeded from a nondeterministic OS entropy
// source. Every call to NewRNG produces an independently-seeded generator;
// it is the factory the k-means trainer and the Annoy forest builder use to
// get a fresh RNG per run (or per tree).
func NewRNG() *mathrand.Rand {
	return mathrand.New(mathrand.NewSource(osSeed()))
}

// osSeed draws a 64-bit seed from crypto/rand. Falling back to a
// time-derived seed would reintroduce exactly the determinism this
// function exists to avoid, so a failure here panics rather than silently
// degrading to a predictable seed.
func osSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("math32: failed to read OS entropy: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
