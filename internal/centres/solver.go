package centres

import (
	"metaheuristics/internal/mh"
	"metaheuristics/internal/rng"
)

// Solver is an mh.Problem over Instance: it assigns every city to exactly
// one location and tracks each location's resulting load.
type Solver struct {
	inst *Instance

	// assign[c] is the location city c is assigned to, or -1 if
	// unassigned.
	assign []int
	// load[l] is the total demand assigned to location l.
	load []int

	explored int
}

// NewSolver returns a Solver with every city unassigned.
func NewSolver(inst *Instance) (*Solver, error) {
	if inst == nil {
		return nil, mh.ErrNilProblem
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return newBlankSolver(inst), nil
}

func newBlankSolver(inst *Instance) *Solver {
	s := &Solver{
		inst:   inst,
		assign: make([]int, inst.NCities),
		load:   make([]int, inst.NLocations),
	}
	for i := range s.assign {
		s.assign[i] = -1
	}
	return s
}

func (s *Solver) Empty() mh.Problem { return newBlankSolver(s.inst) }

func (s *Solver) Clone() mh.Problem {
	c := newBlankSolver(s.inst)
	copy(c.assign, s.assign)
	copy(c.load, s.load)
	return c
}

func (s *Solver) CopyFrom(other mh.Problem) {
	o := other.(*Solver)
	copy(s.assign, o.assign)
	copy(s.load, o.load)
}

// assignCity moves city c onto location loc, updating load bookkeeping.
func (s *Solver) assignCity(c, loc int) {
	if s.assign[c] >= 0 {
		s.load[s.assign[c]] -= s.inst.Demand[c]
	}
	s.assign[c] = loc
	s.load[loc] += s.inst.Demand[c]
}

// GreedyConstruct assigns cities in index order to their nearest location
// that has remaining capacity under the instance's largest centre type.
func (s *Solver) GreedyConstruct() error {
	for c := range s.assign {
		s.assign[c] = -1
	}
	for i := range s.load {
		s.load[i] = 0
	}

	maxCap := s.inst.MaxCapacity()
	for c := 0; c < s.inst.NCities; c++ {
		best := -1
		bestDist := 0.0
		for loc := 0; loc < s.inst.NLocations; loc++ {
			if s.load[loc]+s.inst.Demand[c] > maxCap {
				continue
			}
			d := s.inst.Dist[c][loc]
			if best < 0 || d < bestDist {
				best = loc
				bestDist = d
			}
		}
		if best < 0 {
			return mh.Infeasiblef("centres: no admissible location for city %d under greedy construction", c)
		}
		s.assignCity(c, best)
	}
	return nil
}

// candidate is one (city, location) pairing considered during
// RandomConstruct's restricted-candidate-list step.
type candidate struct {
	city, loc int
	cost      float64
}

// RandomConstruct builds a solution one city at a time. At each step it
// computes the cost of assigning the next unassigned city to every location
// with remaining capacity, restricts the choice to those within
// alpha*(max-min) of the minimum cost (the RCL), and picks uniformly among
// them. It is guarded against an empty RCL at every step (Open Question 1):
// if a city has no admissible location at all, construction fails as
// Infeasible rather than looping forever or indexing an empty candidate
// list.
func (s *Solver) RandomConstruct(g rng.Generator, alpha float64) error {
	for c := range s.assign {
		s.assign[c] = -1
	}
	for i := range s.load {
		s.load[i] = 0
	}

	maxCap := s.inst.MaxCapacity()

	for c := 0; c < s.inst.NCities; c++ {
		var cands []candidate
		minCost, maxCost := 0.0, 0.0
		for loc := 0; loc < s.inst.NLocations; loc++ {
			if s.load[loc]+s.inst.Demand[c] > maxCap {
				continue
			}
			cost := s.inst.Dist[c][loc]
			if len(cands) == 0 || cost < minCost {
				minCost = cost
			}
			if len(cands) == 0 || cost > maxCost {
				maxCost = cost
			}
			cands = append(cands, candidate{city: c, loc: loc, cost: cost})
		}
		if len(cands) == 0 {
			return mh.Infeasiblef("centres: no admissible location for city %d", c)
		}

		threshold := minCost + alpha*(maxCost-minCost)
		var rcl []candidate
		for _, cand := range cands {
			if cand.cost <= threshold {
				rcl = append(rcl, cand)
			}
		}
		if len(rcl) == 0 {
			// Cannot happen given threshold >= minCost, but guarded
			// explicitly rather than trusting the float comparison.
			return mh.Infeasiblef("centres: empty RCL for city %d", c)
		}

		pick := rcl[g.NextInt(0, len(rcl)-1)]
		s.assignCity(pick.city, pick.loc)
	}
	return nil
}

// BestNeighbour explores single-city relocation moves: for every assigned
// city, try moving it to every other location with remaining capacity.
// Under BestImprovement it returns the best-improving move found; under
// FirstImprovement it returns the first one found, scanning cities in index
// order and locations in index order.
func (s *Solver) BestNeighbour(policy mh.LocalSearchPolicy) (mh.Problem, bool) {
	cur := s.Evaluate()
	maxCap := s.inst.MaxCapacity()

	var best *Solver
	bestFit := cur

	for c := 0; c < s.inst.NCities; c++ {
		curLoc := s.assign[c]
		for loc := 0; loc < s.inst.NLocations; loc++ {
			if loc == curLoc {
				continue
			}
			if s.load[loc]+s.inst.Demand[c] > maxCap {
				continue
			}
			s.explored++

			cand := s.Clone().(*Solver)
			cand.assignCity(c, loc)
			fit := cand.Evaluate()
			if fit <= bestFit {
				continue
			}
			best = cand
			bestFit = fit
			if policy == mh.FirstImprovement {
				return best, true
			}
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// Decode assigns city i to location floor(chrom[i]*NLocations) for every i,
// returning InfeasibleError if any location's resulting load exceeds every
// centre type's capacity.
func (s *Solver) Decode(chrom mh.Chromosome) error {
	if len(chrom) != s.inst.NCities {
		return mh.Infeasiblef("centres: expected chromosome of length %d, got %d", s.inst.NCities, len(chrom))
	}
	for i := range s.load {
		s.load[i] = 0
	}
	for c, gene := range chrom {
		loc := int(gene * float64(s.inst.NLocations))
		if loc >= s.inst.NLocations {
			loc = s.inst.NLocations - 1
		}
		s.assign[c] = loc
		s.load[loc] += s.inst.Demand[c]
	}
	maxCap := s.inst.MaxCapacity()
	for loc, l := range s.load {
		if l > maxCap {
			return mh.Infeasiblef("centres: location %d overloaded (%d > max capacity %d)", loc, l, maxCap)
		}
	}
	return nil
}

// Evaluate returns the negated total cost (installation plus travel), since
// the framework maximizes fitness and this problem's natural objective is a
// cost to minimize.
func (s *Solver) Evaluate() float64 {
	total := 0.0
	for _, l := range s.load {
		if l <= 0 {
			continue
		}
		total += s.inst.InstallCostFor(l)
	}
	for c, loc := range s.assign {
		if loc < 0 {
			continue
		}
		total += s.inst.Dist[c][loc]
	}
	return -total
}

func (s *Solver) ChromosomeSize() int     { return s.inst.NCities }
func (s *Solver) NeighboursExplored() int { return s.explored }

// SanityCheck verifies that every city is assigned to an in-range location,
// that s.load agrees with s.assign, and that every location's load is
// coverable by some centre type. It is a structural feasibility check, not
// a quality judgement.
func (s *Solver) SanityCheck() bool {
	recomputed := make([]int, s.inst.NLocations)
	for c, loc := range s.assign {
		if loc < 0 || loc >= s.inst.NLocations {
			return false
		}
		recomputed[loc] += s.inst.Demand[c]
	}
	maxCap := s.inst.MaxCapacity()
	for loc, l := range recomputed {
		if l != s.load[loc] {
			return false
		}
		if l > maxCap {
			return false
		}
	}
	return true
}

// Assignments returns a copy of the current city-to-location assignment.
func (s *Solver) Assignments() []int {
	out := make([]int, len(s.assign))
	copy(out, s.assign)
	return out
}
