package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/signalsfoundry/transit-planner/core"
	"github.com/signalsfoundry/transit-planner/internal/debugview"
	"github.com/signalsfoundry/transit-planner/internal/history"
	"github.com/signalsfoundry/transit-planner/internal/logging"
	"github.com/signalsfoundry/transit-planner/internal/observability"
	"github.com/signalsfoundry/transit-planner/internal/protocol"
)

func main() {
	policyFlag := flag.String("policy", "throughput", "scoring policy: throughput or balance")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty disables)")
	debugAddr := flag.String("debug-addr", "", "HTTP address for the websocket state stream (empty disables)")
	historyPath := flag.String("history", "", "path to a SQLite turn journal (empty disables)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, runID := logging.EnsureRunID(context.Background())
	log = log.With(logging.String("run_id", runID))

	policy, err := core.ParsePolicy(*policyFlag)
	if err != nil {
		log.Error(ctx, "invalid policy flag", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	cfg := core.Config{Policy: policy, Logger: log}

	var collector *observability.PlannerCollector
	if *metricsAddr != "" {
		collector, err = observability.NewPlannerCollector(nil)
		if err != nil {
			log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.Metrics = collector
	}

	var journal *history.Journal
	if *historyPath != "" {
		journal, err = history.Open(*historyPath, runID)
		if err != nil {
			// The journal is an aid, not a dependency.
			log.Warn(ctx, "turn journal disabled", logging.String("error", err.Error()))
			journal = nil
		} else {
			defer journal.Close()
			log.Info(ctx, "turn journal open", logging.String("path", *historyPath))
		}
	}

	engine := core.NewEngine(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, loopDone := context.WithCancel(gctx)
	defer loopDone()

	if collector != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		serveHTTP(g, loopCtx, "metrics", *metricsAddr, mux, log)
	}

	var hub *debugview.Hub
	if *debugAddr != "" {
		hub = debugview.NewHub(log)
		g.Go(func() error {
			hub.Run(loopCtx)
			return nil
		})
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeWS)
		serveHTTP(g, loopCtx, "debug view", *debugAddr, mux, log)
	}

	g.Go(func() error {
		defer loopDone()
		return runTurnLoop(loopCtx, log, engine, hub, journal)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "planner exited with error", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "planner finished", logging.Int("turns", engine.Turn()))
}

// runTurnLoop reads turns from stdin until the stream ends, planning each
// one and writing the action line to stdout.
func runTurnLoop(ctx context.Context, log logging.Logger, engine *core.Engine, hub *debugview.Hub, journal *history.Journal) error {
	reader := protocol.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		in, err := reader.ReadTurn()
		if errors.Is(err, io.EOF) {
			log.Info(ctx, "input stream ended")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read turn: %w", err)
		}

		start := time.Now()
		actions := engine.PlanTurn(ctx, in)
		line := protocol.FormatActions(actions)

		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write turn %d: %w", engine.Turn(), err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("flush turn %d: %w", engine.Turn(), err)
		}
		elapsed := time.Since(start)

		if journal != nil {
			if err := journal.RecordTurn(engine.Turn(), in, actions, line, elapsed); err != nil {
				log.Warn(ctx, "failed to journal turn", logging.Int("turn", engine.Turn()), logging.String("error", err.Error()))
			}
		}
		if hub != nil {
			lines := make([]string, 0, len(actions))
			for _, a := range actions {
				lines = append(lines, protocol.FormatAction(a))
			}
			hub.Broadcast(ctx, debugview.BuildSnapshot(engine.Turn(), in.Budget, engine.Network(), lines))
		}
	}
}

// serveHTTP starts an HTTP server on the group and shuts it down when the
// context is cancelled.
func serveHTTP(g *errgroup.Group, ctx context.Context, name, addr string, handler http.Handler, log logging.Logger) {
	srv := &http.Server{Addr: addr, Handler: handler}

	g.Go(func() error {
		log.Info(ctx, "serving "+name, logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	})
}
