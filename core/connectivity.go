package core

import "github.com/signalsfoundry/transit-planner/model"

// Connectivity is one turn's partition of stations into connected
// components, with the set of destination capability types present inside
// each component. It is recomputed from scratch whenever topology changes;
// a station's demand for a type is satisfiable without construction exactly
// when the type is in its own component's capability set.
type Connectivity struct {
	componentOf  map[int]int
	capabilities map[int]map[model.StationType]struct{}
}

// AnalyzeConnectivity runs a breadth-first sweep over the current link
// adjacency. Long-range links count as ordinary edges here; only
// reachability matters, not weight. O(stations + links).
func (n *Network) AnalyzeConnectivity() *Connectivity {
	c := &Connectivity{
		componentOf:  make(map[int]int, len(n.stations)),
		capabilities: make(map[int]map[model.StationType]struct{}),
	}

	next := 0
	for _, id := range n.StationIDs() {
		if _, seen := c.componentOf[id]; seen {
			continue
		}
		caps := make(map[model.StationType]struct{})
		queue := []int{id}
		c.componentOf[id] = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if st := n.Station(cur); st != nil && !st.IsLandingPad() {
				caps[st.Type] = struct{}{}
			}
			for _, nb := range n.Neighbors(cur) {
				if _, seen := c.componentOf[nb.To]; seen {
					continue
				}
				c.componentOf[nb.To] = next
				queue = append(queue, nb.To)
			}
		}
		c.capabilities[next] = caps
		next++
	}
	return c
}

// ComponentOf returns the component id of a station.
func (c *Connectivity) ComponentOf(id int) (int, bool) {
	comp, ok := c.componentOf[id]
	return comp, ok
}

// SameComponent reports whether two stations are mutually reachable via the
// current links.
func (c *Connectivity) SameComponent(a, b int) bool {
	ca, okA := c.componentOf[a]
	cb, okB := c.componentOf[b]
	return okA && okB && ca == cb
}

// ComponentHas reports whether the component contains at least one station
// of the given capability type.
func (c *Connectivity) ComponentHas(comp int, t model.StationType) bool {
	_, ok := c.capabilities[comp][t]
	return ok
}

// Reachable reports whether a station can already serve demand for the
// capability type within its own component.
func (c *Connectivity) Reachable(stationID int, t model.StationType) bool {
	comp, ok := c.componentOf[stationID]
	if !ok {
		return false
	}
	return c.ComponentHas(comp, t)
}
