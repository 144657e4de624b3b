// Package unsaferand provides deterministic pseudo-randomness for tests: seeds, messages and amounts that differ
// between test cases but are stable across runs.
package unsaferand

import (
	"fmt"
	"hash/fnv"
	"io"
	mrand "math/rand"
)

// UnsafeRand is an io.Reader based on math/rand.Rand. The generated sequence is not cryptographically secure.
// It is not safe for concurrent use.
type UnsafeRand struct {
	*mrand.Rand
}

var _ io.Reader = &UnsafeRand{}

// New returns an UnsafeRand seeded from the fmt.Sprintf("%#v") representation of seedArgs. Maps must not be passed,
// their iteration order is not stable.
func New(seedArgs ...any) *UnsafeRand {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%#v", seedArgs)
	return &UnsafeRand{mrand.New(mrand.NewSource(int64(h.Sum64())))}
}
