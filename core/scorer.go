package core

import (
	"fmt"
	"sort"

	"github.com/signalsfoundry/transit-planner/model"
)

// ScoringPolicy selects how candidate connections are ranked. Lower scores
// always win.
type ScoringPolicy int

const (
	// PolicyThroughput scores distance / (waiting + 1): short links serving
	// large backlogs come first.
	PolicyThroughput ScoringPolicy = iota
	// PolicyBalance scores distance * waiting: small backlogs that can be
	// connected cheaply come first, trading throughput for fairness.
	PolicyBalance
)

// ParsePolicy maps a config string onto a ScoringPolicy.
func ParsePolicy(s string) (ScoringPolicy, error) {
	switch s {
	case "throughput":
		return PolicyThroughput, nil
	case "balance":
		return PolicyBalance, nil
	default:
		return PolicyThroughput, fmt.Errorf("unknown scoring policy %q (want throughput or balance)", s)
	}
}

func (p ScoringPolicy) String() string {
	if p == PolicyBalance {
		return "balance"
	}
	return "throughput"
}

const (
	// teleportDemandFar and teleportHopLimit: backlogs above the demand bar
	// whose requested type still sits more than the hop limit beyond the
	// connection target are scored as long-range candidates even when a tube
	// would fit.
	teleportDemandFar = 30
	teleportHopLimit  = 6

	// teleportDemandBlocked: backlogs above this bar fall back to a
	// long-range candidate when tube geometry is blocked.
	teleportDemandBlocked = 20

	// Long-range candidates spanning more than teleportFarDistance get their
	// score discounted: a teleporter saves the most where tubes are longest.
	teleportFarDistance = 50.0
	teleportFarDiscount = 0.8
)

// Proposal is a scored, not-yet-committed candidate construction action for
// one (landing pad, requested type) demand.
type Proposal struct {
	From     int
	To       int
	Type     model.StationType
	Score    float64
	Teleport bool
	Demand   int
}

// ScoreProposals enumerates every landing pad's unmet demands and keeps the
// single best-scoring connection target per (pad, requested type) pair.
// Demands already satisfiable inside the pad's component are skipped.
// Proposal order is deterministic: pads ascending, requested types
// ascending.
func ScoreProposals(n *Network, conn *Connectivity, policy ScoringPolicy, budget int) []Proposal {
	var proposals []Proposal

	ids := n.StationIDs()
	for _, padID := range ids {
		pad := n.Station(padID)
		if pad == nil || !pad.IsLandingPad() || len(pad.Waiting) == 0 {
			continue
		}

		types := make([]model.StationType, 0, len(pad.Waiting))
		for t := range pad.Waiting {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

		for _, t := range types {
			count := pad.Waiting[t]
			if count <= 0 {
				continue
			}
			if conn.Reachable(padID, t) {
				continue
			}
			if best, ok := bestCandidate(n, conn, policy, padID, t, count, budget); ok {
				proposals = append(proposals, best)
			}
		}
	}
	return proposals
}

// bestCandidate scans every other station as a connection target for one
// demand. A candidate is useful when it offers the requested type itself or
// its component already reaches the type transitively. Useful candidates are
// scored as tubes when geometry allows, and as long-range links when demand
// and distance thresholds say a tube is the wrong tool.
func bestCandidate(n *Network, conn *Connectivity, policy ScoringPolicy, padID int, t model.StationType, count, budget int) (Proposal, bool) {
	var best Proposal
	found := false

	for _, candID := range n.StationIDs() {
		if candID == padID {
			continue
		}
		cand := n.Station(candID)
		if cand == nil {
			continue
		}
		useful := cand.Type == t
		if !useful {
			if comp, ok := conn.ComponentOf(candID); ok && conn.ComponentHas(comp, t) {
				useful = true
			}
		}
		if !useful {
			continue
		}
		if n.LinkExists(padID, candID) {
			continue
		}

		d := n.Station(padID).Pos.DistanceTo(cand.Pos)

		var p Proposal
		switch {
		case n.CanBuildTube(padID, candID):
			// The pad-side path is useless here: a useful candidate is in
			// another component, so the pad never reaches it before the tube
			// exists. Measure the leg passengers still face after connecting.
			if count > teleportDemandFar && n.ShortestPathToType(candID, t).Distance > teleportHopLimit {
				p = teleportProposal(padID, candID, d, count)
			} else {
				p = Proposal{From: padID, To: candID, Demand: count, Score: tubeScore(policy, d, count)}
			}
		case count > teleportDemandBlocked && budget > savingFloor:
			p = teleportProposal(padID, candID, d, count)
		default:
			continue
		}
		p.Type = t

		if !found || p.Score < best.Score {
			best = p
			found = true
		}
	}
	return best, found
}

func tubeScore(policy ScoringPolicy, distance float64, count int) float64 {
	if policy == PolicyBalance {
		return distance * float64(count)
	}
	return distance / float64(count+1)
}

// teleportProposal scores a long-range candidate: the flat price divided by
// distance-normalised demand, discounted for very long spans.
func teleportProposal(from, to int, distance float64, count int) Proposal {
	normalised := float64(count) / (1 + distance/10)
	score := TeleportCost / normalised
	if distance > teleportFarDistance {
		score *= teleportFarDiscount
	}
	return Proposal{From: from, To: to, Score: score, Teleport: true, Demand: count}
}
