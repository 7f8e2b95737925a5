package core

import (
	"testing"

	"github.com/signalsfoundry/transit-planner/model"
)

func TestShortestPathToType_PrefersFewerHops(t *testing.T) {
	// 1 -> 2 -> 3(type 5) and a direct 1 -> 4(type 5).
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, nil),
			module(2, 3, 1, 0),
			module(3, 5, 2, 0),
			module(4, 5, 0, 1),
		},
		[]model.Link{tube(1, 2), tube(2, 3), tube(1, 4)},
	)

	res := n.ShortestPathToType(1, 5)
	if !res.Reachable() {
		t.Fatal("type 5 is linked and must be reachable")
	}
	if res.Distance != 1 {
		t.Errorf("distance = %d, want 1", res.Distance)
	}
	if len(res.Path) != 2 || res.Path[0] != 1 || res.Path[1] != 4 {
		t.Errorf("path = %v, want [1 4]", res.Path)
	}
}

func TestShortestPath_TeleportEdgeIsFree(t *testing.T) {
	// The three-tube chain costs 3; the long-range hop costs 0.
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, nil),
			module(2, 3, 1, 0),
			module(3, 3, 2, 0),
			module(4, 5, 3, 0),
		},
		[]model.Link{tube(1, 2), tube(2, 3), tube(3, 4), teleport(1, 4)},
	)

	res := n.ShortestPathTo(1, 4)
	if res.Distance != 0 {
		t.Errorf("distance = %d, want 0 via the long-range link", res.Distance)
	}
	if len(res.Path) != 2 {
		t.Errorf("path = %v, want the direct two-station hop", res.Path)
	}
}

func TestShortestPath_UnreachableSentinel(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, nil),
			module(2, 3, 5, 5),
		},
		nil,
	)

	res := n.ShortestPathToType(1, 3)
	if res.Reachable() {
		t.Fatal("no links exist; type 3 must be unreachable")
	}
	if res.Distance != UnreachableDistance {
		t.Errorf("distance = %d, want sentinel %d", res.Distance, UnreachableDistance)
	}
	if res.Path != nil {
		t.Errorf("path = %v, want nil", res.Path)
	}
}

func TestShortestPath_StartIsGoal(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{module(1, 3, 0, 0)},
		nil,
	)

	res := n.ShortestPathToType(1, 3)
	if res.Distance != 0 {
		t.Errorf("distance = %d, want 0", res.Distance)
	}
	if len(res.Path) != 1 || res.Path[0] != 1 {
		t.Errorf("path = %v, want [1]", res.Path)
	}
}

func TestEdgeTraffic_CreditsGroupsAlongPaths(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{5: 12}),
			module(2, 3, 1, 0),
			module(3, 5, 2, 0),
		},
		[]model.Link{tube(1, 2), tube(2, 3)},
	)

	traffic := n.EdgeTraffic()
	if got := traffic[model.NewPairKey(1, 2)]; got != 12 {
		t.Errorf("traffic on 1-2 = %d, want 12", got)
	}
	if got := traffic[model.NewPairKey(2, 3)]; got != 12 {
		t.Errorf("traffic on 2-3 = %d, want 12", got)
	}
}

func TestEdgeTraffic_SkipsUnreachableDemand(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{9: 4}),
			module(2, 3, 1, 0),
		},
		[]model.Link{tube(1, 2)},
	)

	if traffic := n.EdgeTraffic(); len(traffic) != 0 {
		t.Errorf("traffic = %v, want empty map for unreachable demand", traffic)
	}
}
