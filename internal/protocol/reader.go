// Package protocol implements the game's line-oriented turn input and the
// textual action-command output.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/signalsfoundry/transit-planner/model"
)

// Reader materialises turn state from the game input stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps the input stream, typically stdin.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadTurn parses one complete turn: budget, link roster, vehicle roster,
// and newly revealed stations. It returns io.EOF untouched when the stream
// ends cleanly before a new turn; any mid-turn failure is wrapped so the
// caller can fail fast without handing partial state to the engine.
func (r *Reader) ReadTurn() (*model.TurnInput, error) {
	in := &model.TurnInput{}

	if _, err := fmt.Fscan(r.r, &in.Budget); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read budget: %w", err)
	}

	var numLinks int
	if _, err := fmt.Fscan(r.r, &numLinks); err != nil {
		return nil, fmt.Errorf("read link count: %w", err)
	}
	for i := 0; i < numLinks; i++ {
		var a, b, capacity int
		if _, err := fmt.Fscan(r.r, &a, &b, &capacity); err != nil {
			return nil, fmt.Errorf("read link %d: %w", i, err)
		}
		in.Links = append(in.Links, model.Link{
			A:        a,
			B:        b,
			Capacity: capacity,
			Teleport: capacity == 0,
		})
	}

	var numVehicles int
	if _, err := fmt.Fscan(r.r, &numVehicles); err != nil {
		return nil, fmt.Errorf("read vehicle count: %w", err)
	}
	for i := 0; i < numVehicles; i++ {
		var id, stops int
		if _, err := fmt.Fscan(r.r, &id, &stops); err != nil {
			return nil, fmt.Errorf("read vehicle %d: %w", i, err)
		}
		tour := make([]int, stops)
		for j := 0; j < stops; j++ {
			if _, err := fmt.Fscan(r.r, &tour[j]); err != nil {
				return nil, fmt.Errorf("read vehicle %d stop %d: %w", i, j, err)
			}
		}
		in.Vehicles = append(in.Vehicles, model.Vehicle{ID: id, Tour: tour})
	}

	var numStations int
	if _, err := fmt.Fscan(r.r, &numStations); err != nil {
		return nil, fmt.Errorf("read station count: %w", err)
	}
	for i := 0; i < numStations; i++ {
		st, err := r.readStation()
		if err != nil {
			return nil, fmt.Errorf("read station %d: %w", i, err)
		}
		in.Stations = append(in.Stations, st)
	}

	return in, nil
}

// readStation parses one station record. A leading 0 marks a landing pad
// followed by id, position, and the waiting passengers' requested types; any
// other leading value is a module's capability type followed by id and
// position.
func (r *Reader) readStation() (model.Station, error) {
	var kind int
	if _, err := fmt.Fscan(r.r, &kind); err != nil {
		return model.Station{}, fmt.Errorf("station kind: %w", err)
	}

	var st model.Station
	st.Type = model.StationType(kind)

	if st.Type == model.TypeLandingPad {
		var count int
		if _, err := fmt.Fscan(r.r, &st.ID, &st.Pos.X, &st.Pos.Y, &count); err != nil {
			return model.Station{}, fmt.Errorf("landing pad header: %w", err)
		}
		st.Waiting = make(map[model.StationType]int, count)
		for k := 0; k < count; k++ {
			var want int
			if _, err := fmt.Fscan(r.r, &want); err != nil {
				return model.Station{}, fmt.Errorf("passenger %d: %w", k, err)
			}
			st.Waiting[model.StationType(want)]++
		}
		return st, nil
	}

	if _, err := fmt.Fscan(r.r, &st.ID, &st.Pos.X, &st.Pos.Y); err != nil {
		return model.Station{}, fmt.Errorf("module record: %w", err)
	}
	return st, nil
}
