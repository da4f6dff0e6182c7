package ngram

import "math/rand/v2"

// Source produces uniformly distributed integers in [0, n). A *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(n int) int

// IntN calls f(n).
func (f SourceFunc) IntN(n int) int { return f(n) }

// NewSource returns a deterministic PCG-backed source for the given seed.
// The returned source is not safe for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newCallSource seeds a fresh source from the runtime generator, giving each
// generation call its own random state.
func newCallSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
