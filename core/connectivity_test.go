package core

import (
	"testing"

	"github.com/signalsfoundry/transit-planner/model"
)

func TestConnectivity_PartitionsStations(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, nil),
			module(2, 3, 1, 0),
			module(3, 4, 2, 0),
			pad(4, 10, 10, nil),
			module(5, 6, 11, 10),
		},
		[]model.Link{tube(1, 2), tube(2, 3), tube(4, 5)},
	)

	conn := n.AnalyzeConnectivity()

	if !conn.SameComponent(1, 3) {
		t.Errorf("stations 1 and 3 are linked transitively and must share a component")
	}
	if conn.SameComponent(1, 4) {
		t.Errorf("stations 1 and 4 have no path and must not share a component")
	}
}

func TestConnectivity_CapabilitySets(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{4: 2}),
			module(2, 3, 1, 0),
			module(3, 4, 2, 0),
			pad(4, 10, 10, map[model.StationType]int{3: 1}),
		},
		[]model.Link{tube(1, 2), tube(2, 3)},
	)

	conn := n.AnalyzeConnectivity()

	if !conn.Reachable(1, 4) {
		t.Errorf("type 4 is present in station 1's component and must be reachable")
	}
	if !conn.Reachable(1, 3) {
		t.Errorf("type 3 is present in station 1's component and must be reachable")
	}
	if conn.Reachable(4, 3) {
		t.Errorf("station 4 is isolated; no type should be reachable")
	}
}

func TestConnectivity_TeleportCountsForReachability(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, nil),
			module(2, 7, 50, 50),
		},
		[]model.Link{teleport(1, 2)},
	)

	conn := n.AnalyzeConnectivity()

	if !conn.Reachable(1, 7) {
		t.Errorf("long-range links are ordinary edges for reachability")
	}
}

func TestConnectivity_LandingPadsAddNoCapability(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, nil),
			pad(2, 1, 0, nil),
		},
		[]model.Link{tube(1, 2)},
	)

	conn := n.AnalyzeConnectivity()

	comp, ok := conn.ComponentOf(1)
	if !ok {
		t.Fatal("station 1 has no component")
	}
	if conn.ComponentHas(comp, model.TypeLandingPad) {
		t.Errorf("landing pads must not appear in capability sets")
	}
}
