// Package centres implements a facility-location combinatorial problem:
// assigning cities to candidate locations, each of which is provisioned
// with a "centre type" (a capacity and an installation cost), so as to
// minimize total installation and travel cost.
//
// It omits the primary/secondary service duality and the minimum-separation
// constraint between installed centres that a fuller facility-location model
// might carry, since neither is needed by any operation the framework
// depends on.
package centres

import (
	"math"

	"metaheuristics/internal/mh"
)

// CentreType is an installable facility with a maximum served load and an
// installation cost.
type CentreType struct {
	Capacity    int
	InstallCost float64
}

// Instance is a fixed problem instance: a set of cities, each with a
// demand, a set of candidate locations, a city-to-location distance matrix,
// and a catalogue of centre types sorted ascending by InstallCost.
type Instance struct {
	NCities     int
	NLocations  int
	Demand      []int       // len == NCities
	Dist        [][]float64 // [city][location]
	CentreTypes []CentreType
}

// NewInstance validates and returns an Instance built from the given
// fields, with CentreTypes sorted ascending by InstallCost.
func NewInstance(demand []int, dist [][]float64, centreTypes []CentreType) (*Instance, error) {
	nLocations := 0
	if len(dist) > 0 {
		nLocations = len(dist[0])
	}
	inst := &Instance{
		NCities:     len(demand),
		NLocations:  nLocations,
		Demand:      demand,
		Dist:        dist,
		CentreTypes: append([]CentreType(nil), centreTypes...),
	}
	sortCentreTypesByCost(inst.CentreTypes)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func sortCentreTypesByCost(ct []CentreType) {
	for i := 1; i < len(ct); i++ {
		for j := i; j > 0 && ct[j].InstallCost < ct[j-1].InstallCost; j-- {
			ct[j], ct[j-1] = ct[j-1], ct[j]
		}
	}
}

// Validate checks Instance's structural invariants.
func (inst *Instance) Validate() error {
	if inst.NCities <= 0 {
		return mh.ConfigErrorf("centres: NCities должно быть > 0 (получено %d)", inst.NCities)
	}
	if inst.NLocations <= 0 {
		return mh.ConfigErrorf("centres: NLocations должно быть > 0 (получено %d)", inst.NLocations)
	}
	if len(inst.CentreTypes) == 0 {
		return mh.ConfigErrorf("centres: требуется хотя бы один тип центра")
	}
	if len(inst.Dist) != inst.NCities {
		return mh.ConfigErrorf("centres: матрица расстояний должна иметь %d строк (получено %d)", inst.NCities, len(inst.Dist))
	}
	for i, row := range inst.Dist {
		if len(row) != inst.NLocations {
			return mh.ConfigErrorf("centres: строка расстояний %d должна иметь длину %d (получено %d)", i, inst.NLocations, len(row))
		}
	}
	for _, d := range inst.Demand {
		if d <= 0 {
			return mh.ConfigErrorf("centres: demand должен быть > 0")
		}
	}
	return nil
}

// MaxCapacity returns the largest capacity among all centre types.
func (inst *Instance) MaxCapacity() int {
	max := 0
	for _, ct := range inst.CentreTypes {
		if ct.Capacity > max {
			max = ct.Capacity
		}
	}
	return max
}

// CheapestCentreFor returns the lowest-cost centre type whose capacity
// covers load, and true. If no centre type can cover load, it returns the
// zero value and false.
func (inst *Instance) CheapestCentreFor(load int) (CentreType, bool) {
	for _, ct := range inst.CentreTypes {
		if ct.Capacity >= load {
			return ct, true
		}
	}
	return CentreType{}, false
}

// InstallCostFor returns the installation cost of the cheapest centre type
// covering load, or +Inf if none does.
func (inst *Instance) InstallCostFor(load int) float64 {
	ct, ok := inst.CheapestCentreFor(load)
	if !ok {
		return math.Inf(1)
	}
	return ct.InstallCost
}
