package rng

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Computer is the platform-default Generator: a golang.org/x/exp/rand.Rand
// source for integers, and a gonum distuv.Uniform draw (bound to that same
// source) for reals.
type Computer struct {
	src  *rand.Rand
	unif distuv.Uniform
}

// NewComputer returns a Computer seeded with seed.
func NewComputer(seed int64) *Computer {
	src := rand.New(rand.NewSource(uint64(seed)))
	return &Computer{
		src:  src,
		unif: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// Seed re-initializes the underlying golang.org/x/exp/rand source.
func (c *Computer) Seed(seed int64) {
	c.src.Seed(uint64(seed))
}

// NextInt returns an integer in [lo, hi], inclusive on both ends.
func (c *Computer) NextInt(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("rng: NextInt(%d, %d): hi < lo", lo, hi))
	}
	return lo + c.src.Intn(hi-lo+1)
}

// NextReal returns a float64 in [0, 1) drawn from a uniform distribution.
func (c *Computer) NextReal() float64 {
	v := c.unif.Rand()
	if v >= 1 {
		// distuv.Uniform's Rand can return the closed upper bound; clamp to
		// keep the [0,1) contract that decode/RCL callers rely on.
		v = 0.9999999999999999
	}
	return v
}
