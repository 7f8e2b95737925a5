package core

import (
	"testing"

	"github.com/signalsfoundry/transit-planner/model"
)

func newExecutor(n *Network) *Executor {
	next := n.MaxVehicleID()
	return &Executor{
		Net:  n,
		Conn: n.AnalyzeConnectivity(),
		NextVehicleID: func() int {
			next++
			return next
		},
	}
}

func TestExecute_CommitsTubeWithVehicle(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{3: 5}),
			module(2, 3, 0, 5),
		},
		nil,
	)
	exec := newExecutor(n)

	budget := 10000
	res := exec.Execute([]Proposal{{From: 1, To: 2, Type: 3, Score: 1, Demand: 5}}, &budget)

	if len(res.Actions) != 2 {
		t.Fatalf("actions = %v, want tube then vehicle", res.Actions)
	}
	if res.Actions[0].Kind != model.ActionTube || res.Actions[0].A != 1 || res.Actions[0].B != 2 {
		t.Errorf("actions[0] = %+v, want tube 1-2", res.Actions[0])
	}
	if res.Actions[1].Kind != model.ActionPod {
		t.Errorf("actions[1] = %+v, want a vehicle", res.Actions[1])
	}
	if want := 10000 - 50 - VehicleCost; budget != want {
		t.Errorf("budget = %d, want %d", budget, want)
	}
	if !n.LinkExists(1, 2) {
		t.Error("committed tube must be visible in the network")
	}
	if !res.Conn.Reachable(1, 3) {
		t.Error("post-commit connectivity must reflect the new link")
	}
}

func TestExecute_VehicleToursThroughCommonNeighbor(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{9: 5}),
			module(2, 3, 0, 5),
			module(3, 4, 4, 3),
		},
		[]model.Link{tube(1, 3), tube(2, 3)},
	)
	n.AddVehicle(model.Vehicle{ID: 1, Tour: []int{1, 3, 2, 1}})
	exec := newExecutor(n)

	budget := 10000
	res := exec.Execute([]Proposal{{From: 1, To: 2, Type: 9, Score: 1, Demand: 5}}, &budget)

	var pod *model.Action
	for i := range res.Actions {
		if res.Actions[i].Kind == model.ActionPod {
			pod = &res.Actions[i]
			break
		}
	}
	if pod == nil {
		t.Fatalf("actions = %v, want a vehicle", res.Actions)
	}
	want := []int{1, 2, 3, 1}
	if len(pod.Tour) != len(want) {
		t.Fatalf("tour = %v, want %v", pod.Tour, want)
	}
	for i := range want {
		if pod.Tour[i] != want[i] {
			t.Fatalf("tour = %v, want %v", pod.Tour, want)
		}
	}
	if pod.VehicleID != 2 {
		t.Errorf("vehicle id = %d, want 2 (past the highest active id)", pod.VehicleID)
	}
}

func TestExecute_SkipsUnaffordableTube(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{3: 5}),
			module(2, 3, 0, 30),
		},
		nil,
	)
	exec := newExecutor(n)

	budget := 200
	res := exec.Execute([]Proposal{{From: 1, To: 2, Type: 3, Score: 5, Demand: 5}}, &budget)

	if len(res.Actions) != 0 {
		t.Errorf("actions = %v, want none when tube plus vehicle exceeds budget", res.Actions)
	}
	if budget != 200 {
		t.Errorf("budget = %d, want untouched 200", budget)
	}
}

func TestExecute_CommitsTeleportWhenAffordable(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{3: 25}),
			module(2, 3, 60, 0),
		},
		nil,
	)
	exec := newExecutor(n)

	budget := 6000
	res := exec.Execute([]Proposal{{From: 1, To: 2, Type: 3, Score: 400, Teleport: true, Demand: 25}}, &budget)

	if len(res.Actions) != 1 || res.Actions[0].Kind != model.ActionTeleport {
		t.Fatalf("actions = %v, want a single long-range link", res.Actions)
	}
	if budget != 1000 {
		t.Errorf("budget = %d, want 1000", budget)
	}
	if res.Saving {
		t.Error("a committed long-range link must not flag saving")
	}
	l, ok := n.Link(1, 2)
	if !ok || !l.Teleport {
		t.Errorf("link 1-2 = %+v, %v; want a committed long-range link", l, ok)
	}
}

func TestExecute_SavingSuppressesTubeSpending(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{3: 25}),
			module(2, 3, 60, 0),
			pad(3, 100, 100, map[model.StationType]int{4: 2}),
			module(4, 4, 100, 103),
			module(5, 6, 200, 200),
			module(6, 6, 200, 203),
		},
		[]model.Link{tube(5, 6)},
	)
	exec := newExecutor(n)

	budget := 4000
	res := exec.Execute([]Proposal{
		{From: 1, To: 2, Type: 3, Score: 1, Teleport: true, Demand: 25},
		{From: 3, To: 4, Type: 4, Score: 2, Demand: 2},
	}, &budget)

	if !res.Saving {
		t.Fatal("budget inside the saving band must flag saving")
	}
	if len(res.Actions) != 0 {
		t.Errorf("actions = %v, want none while saving", res.Actions)
	}
	if budget != 4000 {
		t.Errorf("budget = %d, want untouched 4000", budget)
	}
}

func TestExecute_SkipsDemandMetByEarlierCommit(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			pad(1, 0, 0, map[model.StationType]int{3: 4, 4: 1}),
			module(2, 3, 0, 5),
			module(4, 4, 0, 10),
			module(3, 4, 10, 0),
		},
		[]model.Link{tube(2, 4)},
	)
	n.AddVehicle(model.Vehicle{ID: 9, Tour: []int{2, 4, 2}})
	exec := newExecutor(n)

	budget := 10000
	res := exec.Execute([]Proposal{
		{From: 1, To: 2, Type: 3, Score: 0.5, Demand: 4},
		{From: 1, To: 3, Type: 4, Score: 1, Demand: 1},
	}, &budget)

	for _, a := range res.Actions {
		if a.Kind == model.ActionTube && a.B == 3 {
			t.Errorf("actions = %v; the first commit already reaches type 4, the second tube must be skipped", res.Actions)
		}
	}
	if n.LinkExists(1, 3) {
		t.Error("link 1-3 must not exist")
	}
}

func TestExecute_CoversBareLinks(t *testing.T) {
	n := buildNetwork(t,
		[]model.Station{
			module(1, 3, 0, 0),
			module(2, 4, 0, 5),
			module(3, 5, 10, 0),
			module(4, 6, 10, 5),
		},
		[]model.Link{tube(1, 2), tube(3, 4)},
	)
	exec := newExecutor(n)

	budget := 1500
	res := exec.Execute(nil, &budget)

	if len(res.Actions) != 1 || res.Actions[0].Kind != model.ActionPod {
		t.Fatalf("actions = %v, want one vehicle for the first bare link", res.Actions)
	}
	tour := res.Actions[0].Tour
	if len(tour) != 3 || tour[0] != 1 || tour[1] != 2 || tour[2] != 1 {
		t.Errorf("tour = %v, want ping-pong on 1-2", tour)
	}
	if budget != 500 {
		t.Errorf("budget = %d, want 500 after one vehicle", budget)
	}
}

func TestExecute_NeverOverspends(t *testing.T) {
	budgets := []int{0, 60, 1049, 1050, 5000, 10000}
	for _, start := range budgets {
		n := buildNetwork(t,
			[]model.Station{
				pad(1, 0, 0, map[model.StationType]int{3: 5}),
				module(2, 3, 0, 5),
			},
			nil,
		)
		exec := newExecutor(n)

		budget := start
		exec.Execute([]Proposal{{From: 1, To: 2, Type: 3, Score: 1, Demand: 5}}, &budget)
		if budget < 0 {
			t.Errorf("start budget %d: ended at %d, spending must never overdraw", start, budget)
		}
	}
}
