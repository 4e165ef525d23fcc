package rng

import (
	"fmt"
	"math/big"
)

// BBS is a Blum-Blum-Shub pseudo-random generator: x_{n+1} = x_n^2 mod M,
// where M = P*Q for two large primes P and Q congruent to 3 mod 4. It trades
// speed for a well-studied cryptographic construction, offered as an
// alternative to Computer for callers who want a non-default randomness
// source (e.g. reproducing results across processes without sharing
// math/rand's algorithm).
type BBS struct {
	p, q *big.Int
	m    *big.Int
	x    *big.Int

	// scratch avoids reallocating a big.Int on every draw.
	scratch *big.Int
}

// NewBBS constructs a BBS generator from two primes p and q (each expected
// congruent to 3 mod 4, per the Blum-Blum-Shub construction) and a seed used
// as the initial state x0. It returns an error if p or q is <= 1. A seed that
// shares a factor with p*q is not an error: Seed advances it to a coprime
// state.
func NewBBS(p, q, seed int64) (*BBS, error) {
	if p <= 1 || q <= 1 {
		return nil, fmt.Errorf("rng: BBS требует p > 1 и q > 1 (получено p=%d, q=%d)", p, q)
	}
	bp := big.NewInt(p)
	bq := big.NewInt(q)
	m := new(big.Int).Mul(bp, bq)

	b := &BBS{p: bp, q: bq, m: m, scratch: new(big.Int)}
	b.Seed(seed)
	return b, nil
}

// Seed re-initializes the generator's state from seed, folding it into
// [2, M-1] and coprime to M by advancing until gcd(x0, M) == 1.
func (b *BBS) Seed(seed int64) {
	x0 := new(big.Int).Mod(big.NewInt(seed), b.m)
	if x0.Sign() <= 0 {
		x0.Add(x0, b.m)
	}
	gcd := new(big.Int)
	for {
		if x0.Cmp(big.NewInt(1)) <= 0 {
			x0.SetInt64(2)
		}
		gcd.GCD(nil, nil, x0, b.m)
		if gcd.Cmp(big.NewInt(1)) == 0 {
			break
		}
		x0.Add(x0, big.NewInt(1))
		x0.Mod(x0, b.m)
	}
	b.x = x0
}

// next advances the internal state and returns it.
func (b *BBS) next() *big.Int {
	b.x.Mul(b.x, b.x)
	b.x.Mod(b.x, b.m)
	return b.x
}

// NextReal returns a float64 in [0, 1): the next BBS state divided by M.
func (b *BBS) NextReal() float64 {
	x := b.next()
	f := new(big.Float).SetInt(x)
	mf := new(big.Float).SetInt(b.m)
	f.Quo(f, mf)
	v, _ := f.Float64()
	if v >= 1 {
		v = 0.9999999999999999
	}
	return v
}

// NextInt returns an integer in [lo, hi], inclusive on both ends.
func (b *BBS) NextInt(lo, hi int) int {
	if hi < lo {
		panic("rng: BBS.NextInt: hi < lo")
	}
	span := int64(hi-lo) + 1
	x := b.next()
	b.scratch.Mod(x, big.NewInt(span))
	return lo + int(b.scratch.Int64())
}
