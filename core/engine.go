package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/transit-planner/internal/logging"
	"github.com/signalsfoundry/transit-planner/model"
)

// MetricsRecorder receives per-turn engine measurements. The observability
// collector satisfies it; a nil recorder disables recording.
type MetricsRecorder interface {
	ObservePhase(phase string, seconds float64)
	CountAction(kind string)
	RecordTurn(stations, links, components, proposalsScored, actionsCommitted, budgetLeft int, saving bool)
}

// Config carries the engine's process-lifetime settings.
type Config struct {
	Policy  ScoringPolicy
	Logger  logging.Logger
	Metrics MetricsRecorder
}

// Engine is the planner's process-lifetime context: the persistent station
// registry, congestion history, and the vehicle id counter all live here.
// Constructed once at process start; PlanTurn is called every cycle.
type Engine struct {
	cfg        Config
	log        logging.Logger
	tracer     trace.Tracer
	net        *Network
	congestion *CongestionTracker

	turn          int
	nextVehicleID int
}

// NewEngine builds an engine with empty state.
func NewEngine(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = logging.Noop()
	}
	return &Engine{
		cfg:           cfg,
		log:           cfg.Logger,
		tracer:        otel.Tracer("transit-planner/core"),
		net:           NewNetwork(),
		congestion:    NewCongestionTracker(),
		nextVehicleID: 1,
	}
}

// Network exposes the engine's state for read-only consumers such as the
// debug view and the turn journal.
func (e *Engine) Network() *Network { return e.net }

// Turn returns the number of turns planned so far.
func (e *Engine) Turn() int { return e.turn }

// PlanTurn refreshes state from one turn's input and runs the full decision
// pass: connectivity, demand scoring, greedy construction, and congestion
// upgrades. The returned actions never cost more than in.Budget in total.
func (e *Engine) PlanTurn(ctx context.Context, in *model.TurnInput) []model.Action {
	e.turn++
	ctx, log := logging.WithTurnLogger(ctx, e.log, e.turn)

	ctx, span := e.tracer.Start(ctx, "engine.plan_turn", trace.WithAttributes(
		attribute.Int("turn", e.turn),
		attribute.Int("budget", in.Budget),
	))
	defer span.End()

	budget := in.Budget

	e.phase(ctx, "refresh", func() {
		e.net.BeginTurn(in)
	})
	if max := e.net.MaxVehicleID(); max >= e.nextVehicleID {
		e.nextVehicleID = max + 1
	}

	var conn *Connectivity
	e.phase(ctx, "connectivity", func() {
		conn = e.net.AnalyzeConnectivity()
	})

	var proposals []Proposal
	e.phase(ctx, "score", func() {
		proposals = ScoreProposals(e.net, conn, e.cfg.Policy, budget)
	})

	var res ExecResult
	e.phase(ctx, "execute", func() {
		ex := &Executor{Net: e.net, Conn: conn, NextVehicleID: e.allocVehicleID}
		res = ex.Execute(proposals, &budget)
	})

	actions := res.Actions
	if !res.Saving {
		e.phase(ctx, "congestion", func() {
			actions = append(actions, e.congestion.EvaluateUpgrades(e.net, &budget)...)
		})
	}
	e.congestion.Snapshot(e.net)

	span.SetAttributes(
		attribute.Int("proposals", len(proposals)),
		attribute.Int("actions", len(actions)),
		attribute.Bool("saving", res.Saving),
	)
	log.Info(ctx, "turn planned",
		logging.Int("budget_start", in.Budget),
		logging.Int("budget_left", budget),
		logging.Int("proposals", len(proposals)),
		logging.Int("actions", len(actions)),
		logging.Any("saving", res.Saving),
	)

	if e.cfg.Metrics != nil {
		for _, a := range actions {
			e.cfg.Metrics.CountAction(a.Kind.String())
		}
		components := 0
		if res.Conn != nil {
			components = len(res.Conn.capabilities)
		}
		e.cfg.Metrics.RecordTurn(
			len(e.net.StationIDs()),
			len(e.net.Links()),
			components,
			len(proposals),
			len(actions),
			budget,
			res.Saving,
		)
	}

	return actions
}

// phase runs one named planning stage under a child span and reports its
// duration to the metrics recorder.
func (e *Engine) phase(ctx context.Context, name string, fn func()) {
	_, span := e.tracer.Start(ctx, "engine."+name)
	start := time.Now()
	fn()
	span.End()
	if e.cfg.Metrics != nil {
		e.cfg.Metrics.ObservePhase(name, time.Since(start).Seconds())
	}
}

// allocVehicleID hands out the next vehicle id. The counter is seeded past
// the highest id ever observed and only moves forward, so engine-assigned
// ids never collide with active vehicles in this or a later turn.
func (e *Engine) allocVehicleID() int {
	id := e.nextVehicleID
	e.nextVehicleID++
	return id
}
