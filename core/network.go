package core

import (
	"math"
	"sort"

	"github.com/signalsfoundry/transit-planner/model"
)

const (
	// tubeCostPerUnit prices physical tubes at 1 resource per 0.1 distance
	// units, floor-rounded with a minimum of 1.
	tubeCostPerUnit = 10.0

	// StationSafetyRadius is the clearance a new tube must keep from every
	// station that is not one of its endpoints.
	StationSafetyRadius = 1.5
)

// Neighbor is one adjacency entry: the station reached and the traversal
// weight of the connecting link (1 for tubes, 0 for long-range links).
type Neighbor struct {
	To       int
	Weight   int
	Teleport bool
}

// Network owns the persistent station registry and the per-turn link and
// vehicle rosters, plus the adjacency derived from links. Links and vehicles
// are replaced wholesale at the start of every turn and extended in place by
// the construction phase, so later decisions within the turn observe the new
// topology.
type Network struct {
	stations  map[int]*model.Station
	links     []model.Link
	linkIndex map[model.PairKey]int
	vehicles  []model.Vehicle
	adjacency map[int][]Neighbor
}

// NewNetwork returns an empty network. The station registry survives across
// turns; everything else is rebuilt by BeginTurn.
func NewNetwork() *Network {
	return &Network{
		stations:  make(map[int]*model.Station),
		linkIndex: make(map[model.PairKey]int),
		adjacency: make(map[int][]Neighbor),
	}
}

// BeginTurn refreshes the network from one turn's materialised input.
// Stations mentioned again only have their waiting-passenger map replaced;
// unknown stations are registered. Links and vehicles are rebuilt from
// scratch.
func (n *Network) BeginTurn(in *model.TurnInput) {
	for _, st := range in.Stations {
		if existing, ok := n.stations[st.ID]; ok {
			if st.IsLandingPad() {
				existing.Waiting = st.Waiting
			}
			continue
		}
		copied := st
		n.stations[st.ID] = &copied
	}

	n.links = n.links[:0]
	n.linkIndex = make(map[model.PairKey]int, len(in.Links))
	n.adjacency = make(map[int][]Neighbor, len(n.stations))
	for _, l := range in.Links {
		n.AddLink(l)
	}

	n.vehicles = append(n.vehicles[:0], in.Vehicles...)
}

// Station returns the registered station for the id, or nil.
func (n *Network) Station(id int) *model.Station {
	return n.stations[id]
}

// StationIDs returns all registered station ids in ascending order, so every
// per-turn sweep visits stations deterministically.
func (n *Network) StationIDs() []int {
	ids := make([]int, 0, len(n.stations))
	for id := range n.stations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Links returns the current turn's link collection, including links added by
// this turn's construction phase.
func (n *Network) Links() []model.Link {
	return n.links
}

// Vehicles returns the current turn's vehicle roster, including vehicles
// synthesised this turn.
func (n *Network) Vehicles() []model.Vehicle {
	return n.vehicles
}

// AddVehicle appends a vehicle to the roster so the coverage sweep sees it.
func (n *Network) AddVehicle(v model.Vehicle) {
	n.vehicles = append(n.vehicles, v)
}

// AddLink records a link in the collection, the canonical-pair index, and
// the adjacency. Lookups store indexes into the append-only slice rather
// than pointers, so growth never invalidates them.
func (n *Network) AddLink(l model.Link) {
	n.linkIndex[l.Key()] = len(n.links)
	n.links = append(n.links, l)

	w := 1
	if l.Teleport {
		w = 0
	}
	n.adjacency[l.A] = append(n.adjacency[l.A], Neighbor{To: l.B, Weight: w, Teleport: l.Teleport})
	n.adjacency[l.B] = append(n.adjacency[l.B], Neighbor{To: l.A, Weight: w, Teleport: l.Teleport})
}

// LinkExists reports whether any link (tube or long-range) connects the pair.
func (n *Network) LinkExists(a, b int) bool {
	_, ok := n.linkIndex[model.NewPairKey(a, b)]
	return ok
}

// Link returns the link for the pair, if present.
func (n *Network) Link(a, b int) (model.Link, bool) {
	idx, ok := n.linkIndex[model.NewPairKey(a, b)]
	if !ok {
		return model.Link{}, false
	}
	return n.links[idx], true
}

// UpgradeLink increments the capacity of an existing physical tube by one.
// It reports false for unknown pairs and for long-range links.
func (n *Network) UpgradeLink(a, b int) bool {
	idx, ok := n.linkIndex[model.NewPairKey(a, b)]
	if !ok || n.links[idx].Teleport {
		return false
	}
	n.links[idx].Capacity++
	return true
}

// Neighbors returns the adjacency entries for a station.
func (n *Network) Neighbors(id int) []Neighbor {
	return n.adjacency[id]
}

// CommonNeighbor returns a station adjacent to both a and b, preferring the
// earliest entry in a's adjacency. Used to close three-station vehicle
// tours.
func (n *Network) CommonNeighbor(a, b int) (int, bool) {
	next := make(map[int]struct{}, len(n.adjacency[b]))
	for _, nb := range n.adjacency[b] {
		next[nb.To] = struct{}{}
	}
	for _, na := range n.adjacency[a] {
		if na.To == b {
			continue
		}
		if _, ok := next[na.To]; ok {
			return na.To, true
		}
	}
	return 0, false
}

// TubeCost prices a physical tube between two stations:
// max(1, floor(10 * distance)). Unknown endpoints price as unaffordable.
func (n *Network) TubeCost(a, b int) int {
	sa, sb := n.stations[a], n.stations[b]
	if sa == nil || sb == nil {
		return math.MaxInt32
	}
	cost := int(math.Floor(sa.Pos.DistanceTo(sb.Pos) * tubeCostPerUnit))
	if cost < 1 {
		cost = 1
	}
	return cost
}

// CanBuildTube reports whether a physical tube between a and b is
// geometrically feasible: the pair is not already linked, the segment
// crosses no existing tube, and it keeps StationSafetyRadius clearance from
// every uninvolved station. Long-range links never block construction.
func (n *Network) CanBuildTube(a, b int) bool {
	if a == b {
		return false
	}
	sa, sb := n.stations[a], n.stations[b]
	if sa == nil || sb == nil {
		return false
	}
	if n.LinkExists(a, b) {
		return false
	}

	for _, l := range n.links {
		if l.Teleport {
			continue
		}
		la, lb := n.stations[l.A], n.stations[l.B]
		if la == nil || lb == nil {
			continue
		}
		if SegmentsIntersect(sa.Pos, sb.Pos, la.Pos, lb.Pos) {
			return false
		}
	}

	for id, st := range n.stations {
		if id == a || id == b {
			continue
		}
		if PointToSegmentDistance(st.Pos, sa.Pos, sb.Pos) < StationSafetyRadius {
			return false
		}
	}
	return true
}

// MaxVehicleID returns the highest vehicle id in the current roster, or 0
// when the roster is empty.
func (n *Network) MaxVehicleID() int {
	max := 0
	for _, v := range n.vehicles {
		if v.ID > max {
			max = v.ID
		}
	}
	return max
}
