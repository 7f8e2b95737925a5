package core

import (
	"sort"

	"github.com/signalsfoundry/transit-planner/model"
)

const (
	// VehicleCost is the flat price of creating a vehicle.
	VehicleCost = 1000

	// TeleportCost is the flat price of a long-range link.
	TeleportCost = 5000

	// savingFloor bounds the saving band: a budget in (savingFloor,
	// TeleportCost) when a long-range proposal comes up halts further
	// low-value tube spending so next turn can afford the link.
	savingFloor = 3500
)

// ExecResult is the outcome of one turn's construction phase. Conn is the
// connectivity after the final commit, for downstream consumers.
type ExecResult struct {
	Actions []model.Action
	Saving  bool
	Conn    *Connectivity
}

// Executor commits sorted proposals against the turn's budget, mutating
// network state immediately on every commit so lower-priority proposals see
// the updated topology. Feasibility and reachability are re-checked at
// commit time; proposals invalidated by earlier commits are silently
// skipped. Connectivity is re-derived after every committed link.
type Executor struct {
	Net  *Network
	Conn *Connectivity
	// NextVehicleID allocates vehicle ids; it must never reuse an id already
	// observed among active vehicles.
	NextVehicleID func() int
}

// Execute runs the greedy commit pass: proposals ascending by score, ties
// kept in arrival order.
func (e *Executor) Execute(proposals []Proposal, budget *int) ExecResult {
	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].Score < proposals[j].Score
	})

	var actions []model.Action
	saving := false

	for _, p := range proposals {
		// A higher-priority proposal touching the same stations may already
		// have linked this pair.
		if e.Net.LinkExists(p.From, p.To) {
			continue
		}
		// An earlier commit may have merged the pad into a component that
		// already serves this demand.
		if e.Conn.Reachable(p.From, p.Type) {
			continue
		}

		if p.Teleport {
			switch {
			case *budget >= TeleportCost:
				actions = append(actions, model.Action{Kind: model.ActionTeleport, A: p.From, B: p.To})
				e.commitLink(model.Link{A: p.From, B: p.To, Teleport: true})
				*budget -= TeleportCost
			case *budget > savingFloor:
				saving = true
			}
			continue
		}

		if saving {
			continue
		}

		cost := e.Net.TubeCost(p.From, p.To)
		if *budget < cost+VehicleCost {
			continue
		}
		if !e.Net.CanBuildTube(p.From, p.To) {
			continue
		}

		actions = append(actions, model.Action{Kind: model.ActionTube, A: p.From, B: p.To})
		e.commitLink(model.Link{A: p.From, B: p.To, Capacity: 1})
		*budget -= cost

		actions = append(actions, e.buildVehicle(p.From, p.To, budget))
	}

	if !saving {
		actions = append(actions, e.coverBareLinks(budget)...)
	}

	return ExecResult{Actions: actions, Saving: saving, Conn: e.Conn}
}

// commitLink records the link and re-derives connectivity so every
// subsequent reachability decision in this turn sees the new component
// structure.
func (e *Executor) commitLink(l model.Link) {
	e.Net.AddLink(l)
	e.Conn = e.Net.AnalyzeConnectivity()
}

// buildVehicle synthesises a patrol tour for a freshly built tube: a
// three-station loop through a station adjacent to both endpoints when one
// exists, else a two-station ping-pong.
func (e *Executor) buildVehicle(from, to int, budget *int) model.Action {
	tour := []int{from, to, from}
	if c, ok := e.Net.CommonNeighbor(from, to); ok {
		tour = []int{from, to, c, from}
	}

	id := e.NextVehicleID()
	e.Net.AddVehicle(model.Vehicle{ID: id, Tour: tour})
	*budget -= VehicleCost

	return model.Action{Kind: model.ActionPod, VehicleID: id, Tour: tour}
}

// coverBareLinks adds a ping-pong vehicle to every physical link no tour
// traverses, while the budget allows. Every committed link must end the turn
// covered by at least one vehicle; a tube nobody services deadlocks its
// passengers.
func (e *Executor) coverBareLinks(budget *int) []model.Action {
	var actions []model.Action
	for _, l := range e.Net.Links() {
		if l.Teleport {
			continue
		}
		if *budget < VehicleCost {
			break
		}
		covered := false
		for _, v := range e.Net.Vehicles() {
			if v.Covers(l.A, l.B) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		id := e.NextVehicleID()
		tour := []int{l.A, l.B, l.A}
		e.Net.AddVehicle(model.Vehicle{ID: id, Tour: tour})
		*budget -= VehicleCost
		actions = append(actions, model.Action{Kind: model.ActionPod, VehicleID: id, Tour: tour})
	}
	return actions
}
