// Package mhtest holds small mh.Problem fakes shared by the algorithm
// engines' test suites: a hill-climb integer problem for local
// search/GRASP, and a sum-of-genes random-key problem for RKGA/BRKGA.
package mhtest

import (
	"gonum.org/v1/gonum/floats"

	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

// HillClimb is an mh.Problem over a single integer Value in [0, Peak],
// fitness = -(|Peak - Value|), whose only neighbours are Value-1 and
// Value+1. It always converges to Value == Peak under local search.
type HillClimb struct {
	Peak     int
	Value    int
	explored int
}

func NewHillClimb(peak, start int) *HillClimb {
	return &HillClimb{Peak: peak, Value: start}
}

func (h *HillClimb) Empty() mh.Problem { return &HillClimb{Peak: h.Peak} }

func (h *HillClimb) Clone() mh.Problem {
	c := *h
	return &c
}

func (h *HillClimb) CopyFrom(other mh.Problem) {
	o := other.(*HillClimb)
	h.Value = o.Value
}

func (h *HillClimb) GreedyConstruct() error {
	h.Value = 0
	return nil
}

func (h *HillClimb) RandomConstruct(g rng.Generator, alpha float64) error {
	h.Value = g.NextInt(0, h.Peak)
	return nil
}

func (h *HillClimb) BestNeighbour(policy mh.LocalSearchPolicy) (mh.Problem, bool) {
	cur := h.Evaluate()
	var best *HillClimb
	var bestFit float64

	for _, delta := range []int{-1, 1} {
		v := h.Value + delta
		if v < 0 || v > h.Peak+5 {
			continue
		}
		h.explored++
		cand := &HillClimb{Peak: h.Peak, Value: v}
		fit := cand.Evaluate()
		if fit <= cur {
			continue
		}
		if best == nil || fit > bestFit {
			best = cand
			bestFit = fit
			if policy == mh.FirstImprovement {
				break
			}
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

func (h *HillClimb) Decode(chrom mh.Chromosome) error {
	if len(chrom) != 1 {
		return mh.Infeasiblef("hillclimb: expected chromosome of length 1, got %d", len(chrom))
	}
	v := int(chrom[0] * float64(h.Peak+1))
	if v > h.Peak {
		v = h.Peak
	}
	h.Value = v
	return nil
}

func (h *HillClimb) Evaluate() float64 {
	d := h.Peak - h.Value
	if d < 0 {
		d = -d
	}
	return -float64(d)
}

func (h *HillClimb) ChromosomeSize() int     { return 1 }
func (h *HillClimb) NeighboursExplored() int { return h.explored }

// SanityCheck reports whether Value is within the problem's declared range.
func (h *HillClimb) SanityCheck() bool { return h.Value >= 0 && h.Value <= h.Peak }

// AlwaysInfeasible fails every construction and decode attempt; it exercises
// the Infeasible-1 scenario (GRASP giving up and returning the problem
// unchanged).
type AlwaysInfeasible struct{}

func (AlwaysInfeasible) Empty() mh.Problem       { return AlwaysInfeasible{} }
func (a AlwaysInfeasible) Clone() mh.Problem     { return a }
func (AlwaysInfeasible) CopyFrom(mh.Problem)     {}
func (AlwaysInfeasible) GreedyConstruct() error  { return mh.Infeasiblef("always infeasible") }
func (AlwaysInfeasible) RandomConstruct(rng.Generator, float64) error {
	return mh.Infeasiblef("always infeasible")
}
func (AlwaysInfeasible) BestNeighbour(mh.LocalSearchPolicy) (mh.Problem, bool) { return nil, false }
func (AlwaysInfeasible) Decode(mh.Chromosome) error                           { return mh.Infeasiblef("always infeasible") }
func (AlwaysInfeasible) Evaluate() float64                                   { return 0 }
func (AlwaysInfeasible) ChromosomeSize() int                                 { return 1 }
func (AlwaysInfeasible) NeighboursExplored() int                             { return 0 }
func (AlwaysInfeasible) SanityCheck() bool                                   { return false }

// SumGenes is a random-key Problem whose fitness is the sum of its decoded
// chromosome's genes: an easy, strictly-increasing objective useful for
// checking that RKGA/BRKGA converge and that elite tracking behaves.
type SumGenes struct {
	Size     int
	genes    mh.Chromosome
	explored int
}

func NewSumGenes(size int) *SumGenes { return &SumGenes{Size: size, genes: make(mh.Chromosome, size)} }

func (s *SumGenes) Empty() mh.Problem { return NewSumGenes(s.Size) }

func (s *SumGenes) Clone() mh.Problem {
	c := NewSumGenes(s.Size)
	copy(c.genes, s.genes)
	return c
}

func (s *SumGenes) CopyFrom(other mh.Problem) {
	o := other.(*SumGenes)
	copy(s.genes, o.genes)
}

func (s *SumGenes) GreedyConstruct() error {
	for i := range s.genes {
		s.genes[i] = 1
	}
	return nil
}

func (s *SumGenes) RandomConstruct(g rng.Generator, alpha float64) error {
	for i := range s.genes {
		s.genes[i] = g.NextReal()
	}
	return nil
}

func (s *SumGenes) BestNeighbour(mh.LocalSearchPolicy) (mh.Problem, bool) {
	cur := s.Evaluate()
	for i := range s.genes {
		if s.genes[i] >= 1 {
			continue
		}
		s.explored++
		cand := s.Clone().(*SumGenes)
		cand.genes[i] = 1
		if cand.Evaluate() > cur {
			return cand, true
		}
	}
	return nil, false
}

func (s *SumGenes) Decode(chrom mh.Chromosome) error {
	if len(chrom) != s.Size {
		return mh.Infeasiblef("sumgenes: expected chromosome of length %d, got %d", s.Size, len(chrom))
	}
	copy(s.genes, chrom)
	return nil
}

func (s *SumGenes) Evaluate() float64 {
	return floats.Sum(s.genes)
}

func (s *SumGenes) ChromosomeSize() int     { return s.Size }
func (s *SumGenes) NeighboursExplored() int { return s.explored }

// SanityCheck reports whether every gene is within [0,1].
func (s *SumGenes) SanityCheck() bool {
	for _, g := range s.genes {
		if g < 0 || g > 1 {
			return false
		}
	}
	return true
}
