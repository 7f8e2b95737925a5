package core

import (
	"testing"

	"github.com/signalsfoundry/transit-planner/model"
)

func pad(id int, x, y float64, waiting map[model.StationType]int) model.Station {
	return model.Station{
		ID:      id,
		Type:    model.TypeLandingPad,
		Pos:     model.Point{X: x, Y: y},
		Waiting: waiting,
	}
}

func module(id int, typ model.StationType, x, y float64) model.Station {
	return model.Station{ID: id, Type: typ, Pos: model.Point{X: x, Y: y}}
}

func tube(a, b int) model.Link {
	return model.Link{A: a, B: b, Capacity: 1}
}

func teleport(a, b int) model.Link {
	return model.Link{A: a, B: b, Teleport: true}
}

func buildNetwork(t *testing.T, stations []model.Station, links []model.Link) *Network {
	t.Helper()
	n := NewNetwork()
	n.BeginTurn(&model.TurnInput{Stations: stations, Links: links})
	return n
}
