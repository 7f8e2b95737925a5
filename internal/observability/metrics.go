package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlannerCollector bundles Prometheus metrics for the planning engine and
// provides a ready-to-serve /metrics handler. It satisfies the engine's
// MetricsRecorder interface so PlanTurn can drive values directly.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	TurnsTotal     prometheus.Counter
	SavingTurns    prometheus.Counter
	PhaseDurations *prometheus.HistogramVec
	ActionsTotal   *prometheus.CounterVec
	ProposalsTotal prometheus.Counter

	BudgetLeft prometheus.Gauge
	Stations   prometheus.Gauge
	Links      prometheus.Gauge
	Components prometheus.Gauge
}

// NewPlannerCollector registers planner metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	turns, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_turns_total",
		Help: "Total number of turns planned.",
	}), "planner_turns_total")
	if err != nil {
		return nil, err
	}

	savingTurns, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_saving_turns_total",
		Help: "Turns that ended in saving mode, deferring spending toward a long-range link.",
	}), "planner_saving_turns_total")
	if err != nil {
		return nil, err
	}

	phases := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_phase_duration_seconds",
		Help:    "Duration of each planning phase, labeled by phase name.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"phase"})
	phases, err = registerHistogramVec(reg, phases, "planner_phase_duration_seconds")
	if err != nil {
		return nil, err
	}

	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_actions_total",
		Help: "Committed actions, labeled by kind (TUBE, TELEPORT, POD, UPGRADE).",
	}, []string{"kind"})
	actions, err = registerCounterVec(reg, actions, "planner_actions_total")
	if err != nil {
		return nil, err
	}

	proposals, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_proposals_total",
		Help: "Total proposals scored across all turns.",
	}), "planner_proposals_total")
	if err != nil {
		return nil, err
	}

	budget, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_budget_left",
		Help: "Unspent budget at the end of the most recent turn.",
	}), "planner_budget_left")
	if err != nil {
		return nil, err
	}
	stations, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_stations",
		Help: "Stations currently registered.",
	}), "planner_stations")
	if err != nil {
		return nil, err
	}
	links, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_links",
		Help: "Links in the network at the end of the most recent turn.",
	}), "planner_links")
	if err != nil {
		return nil, err
	}
	components, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_components",
		Help: "Connected components at the end of the most recent turn.",
	}), "planner_components")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:       gatherer,
		TurnsTotal:     turns,
		SavingTurns:    savingTurns,
		PhaseDurations: phases,
		ActionsTotal:   actions,
		ProposalsTotal: proposals,
		BudgetLeft:     budget,
		Stations:       stations,
		Links:          links,
		Components:     components,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObservePhase records one planning phase duration.
func (c *PlannerCollector) ObservePhase(phase string, seconds float64) {
	if c == nil || c.PhaseDurations == nil {
		return
	}
	c.PhaseDurations.WithLabelValues(phase).Observe(seconds)
}

// CountAction increments the committed-action counter for the kind.
func (c *PlannerCollector) CountAction(kind string) {
	if c == nil || c.ActionsTotal == nil {
		return
	}
	c.ActionsTotal.WithLabelValues(kind).Inc()
}

// RecordTurn updates the per-turn gauges and counters.
func (c *PlannerCollector) RecordTurn(stations, links, components, proposalsScored, actionsCommitted, budgetLeft int, saving bool) {
	if c == nil {
		return
	}
	if c.TurnsTotal != nil {
		c.TurnsTotal.Inc()
	}
	if saving && c.SavingTurns != nil {
		c.SavingTurns.Inc()
	}
	if c.ProposalsTotal != nil {
		c.ProposalsTotal.Add(float64(proposalsScored))
	}
	if c.BudgetLeft != nil {
		c.BudgetLeft.Set(float64(budgetLeft))
	}
	if c.Stations != nil {
		c.Stations.Set(float64(stations))
	}
	if c.Links != nil {
		c.Links.Set(float64(links))
	}
	if c.Components != nil {
		c.Components.Set(float64(components))
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
