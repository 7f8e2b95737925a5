package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/signalsfoundry/transit-planner/model"
)

func openTestJournal(t *testing.T, runID string) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"), runID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RoundTrip(t *testing.T) {
	j := openTestJournal(t, "run-1")

	in := &model.TurnInput{
		Budget:   3500,
		Stations: []model.Station{{ID: 1}, {ID: 2}},
		Links:    []model.Link{{A: 1, B: 2, Capacity: 1}},
	}
	actions := []model.Action{
		{Kind: model.ActionTube, A: 1, B: 2},
		{Kind: model.ActionPod, VehicleID: 1, Tour: []int{1, 2, 1}},
	}

	if err := j.RecordTurn(1, in, actions, "TUBE 1 2;POD 1 1 2 1", 7*time.Millisecond); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}
	if err := j.RecordTurn(2, &model.TurnInput{Budget: 1450}, nil, "WAIT", time.Millisecond); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}

	got, err := j.Turns("run-1")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %v, want two turns", got)
	}
	first := got[0]
	if first.Turn != 1 || first.Budget != 3500 || first.ActionCount != 2 {
		t.Errorf("row 1 = %+v, want turn 1, budget 3500, two actions", first)
	}
	if first.ActionLine != "TUBE 1 2;POD 1 1 2 1" {
		t.Errorf("action line = %q", first.ActionLine)
	}
	if got[1].ActionLine != "WAIT" || got[1].ActionCount != 0 {
		t.Errorf("row 2 = %+v, want an empty WAIT turn", got[1])
	}
}

func TestJournal_IsolatesRuns(t *testing.T) {
	j := openTestJournal(t, "run-a")

	if err := j.RecordTurn(1, &model.TurnInput{Budget: 100}, nil, "WAIT", 0); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}

	got, err := j.Turns("run-b")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("rows = %v, want none for a different run id", got)
	}
}
