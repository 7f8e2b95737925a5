package core

import "github.com/signalsfoundry/transit-planner/model"

// congestionCapacityFactor: a link endpoint's backlog must exceed this
// multiple of the link's capacity before an upgrade is considered.
const congestionCapacityFactor = 5

// CongestionTracker persists per-station waiting totals across turns so
// growing queues can be told apart from persistently large ones. Only the
// trend plus the capacity multiple triggers an upgrade.
type CongestionTracker struct {
	prevTotals map[int]int
}

// NewCongestionTracker returns a tracker with no history; the first turn can
// never trigger upgrades since every comparison baseline is zero.
func NewCongestionTracker() *CongestionTracker {
	return &CongestionTracker{prevTotals: make(map[int]int)}
}

// EvaluateUpgrades walks every physical tube and emits a capacity upgrade
// when an endpoint's waiting total grew since the previous turn and exceeds
// congestionCapacityFactor times the tube's capacity, provided the budget
// covers the tube's base cost. State and budget are updated immediately.
func (t *CongestionTracker) EvaluateUpgrades(n *Network, budget *int) []model.Action {
	var actions []model.Action
	for _, l := range n.Links() {
		if l.Teleport {
			continue
		}
		if !t.endpointGrewPast(n, l) {
			continue
		}
		cost := n.TubeCost(l.A, l.B)
		if *budget < cost {
			continue
		}
		if !n.UpgradeLink(l.A, l.B) {
			continue
		}
		*budget -= cost
		actions = append(actions, model.Action{Kind: model.ActionUpgrade, A: l.A, B: l.B})
	}
	return actions
}

func (t *CongestionTracker) endpointGrewPast(n *Network, l model.Link) bool {
	for _, id := range [2]int{l.A, l.B} {
		st := n.Station(id)
		if st == nil || !st.IsLandingPad() {
			continue
		}
		total := st.TotalWaiting()
		if total > t.prevTotals[id] && total > congestionCapacityFactor*l.Capacity {
			return true
		}
	}
	return false
}

// Snapshot replaces the stored baseline with each landing pad's current
// waiting total, closing the turn's congestion cycle.
func (t *CongestionTracker) Snapshot(n *Network) {
	totals := make(map[int]int, len(t.prevTotals))
	for _, id := range n.StationIDs() {
		st := n.Station(id)
		if st == nil || !st.IsLandingPad() {
			continue
		}
		totals[id] = st.TotalWaiting()
	}
	t.prevTotals = totals
}
