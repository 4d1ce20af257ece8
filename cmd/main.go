package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/revintel/internal/adapters/http/api"
	"github.com/okian/revintel/internal/adapters/http/site"
	"github.com/okian/revintel/internal/adapters/http/swagger"
	"github.com/okian/revintel/internal/adapters/mcp"
	"github.com/okian/revintel/internal/adapters/predictionlog"
	app "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/config"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/internal/scheduler"
	"github.com/okian/revintel/pkg/logger"
	"github.com/okian/revintel/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// Scheduled job names.
const (
	jobRescoreSweep = "rescore_sweep"
	jobHealthCheck  = "health_check"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// The logger may not be available yet.
		os.Stderr.WriteString("revintel: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// MCP owns stdout when stdio is served.
	out := os.Stdout
	if cfg.ServesStdio() {
		out = os.Stderr
	}
	if err := logger.Init(logger.WithWriter(out), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Get()

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			log.Error(stopCtx, "service stop failed", logger.Error(err))
		}
	}()

	sched, err := newScheduler(cfg, svc, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.ServesHTTP() {
		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           newMux(gctx, svc),
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		g.Go(func() error {
			log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			log.Info(shutdownCtx, "shutting down HTTP server")
			return srv.Shutdown(shutdownCtx)
		})
	}

	if cfg.ServesStdio() {
		server := mcp.New(svc, mcp.WithLogger(log.Named("mcp")), mcp.WithVersion(version))
		g.Go(func() error {
			// Reads on stdin do not observe ctx, so Run is not awaited on shutdown.
			done := make(chan error, 1)
			go func() { done <- server.Run(gctx) }()
			select {
			case err := <-done:
				if !cfg.ServesHTTP() {
					// The client closed stdin; nothing else is being served.
					cancel()
				}
				return err
			case <-gctx.Done():
				return nil
			}
		})
	}

	startScheduler(gctx, sched, log)
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return sched.Stop(stopCtx)
	})

	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})
	g.Go(func() error {
		startServiceMetricsUpdater(gctx, svc, cfg.QueueSize)
		return nil
	})

	err = g.Wait()
	log.Info(context.Background(), "server stopped")
	return err
}

// newService builds the scoring engine, the prediction log and the service.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	engine, err := scoring.NewEngine(cfg.Model)
	if err != nil {
		return nil, err
	}

	opts := []app.Option{
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMaxTopLeads(cfg.MaxTopLeads),
	}
	if cfg.PredictionLogPath != "" {
		plog, err := predictionlog.OpenBoltLog(cfg.PredictionLogPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithPredictionLog(plog))
	}
	return app.New(engine, opts...), nil
}

// newMux registers the business API, the API docs and the landing page.
func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)
	return mux
}

// newScheduler registers the rescoring sweep and the drift check. Jobs with
// an empty schedule only run through Trigger.
func newScheduler(cfg *config.Config, svc *app.Service, log logger.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(scheduler.WithLogger(log.Named("scheduler")))

	err := sched.Add(jobRescoreSweep, cfg.RescoreSchedule, func(ctx context.Context) error {
		res, err := svc.EnqueueSweep(ctx)
		if err != nil {
			return err
		}
		log.Info(ctx, "rescore sweep queued",
			logger.String("sweep_id", res.SweepID),
			logger.Int("queued", res.Queued),
			logger.Int("skipped", res.Skipped),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = sched.Add(jobHealthCheck, cfg.HealthCheckSchedule, func(ctx context.Context) error {
		_, err := svc.CheckModelHealth(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// startScheduler starts the cron loop and runs the drift check once so the
// model health gauges are populated before the first scheduled tick.
func startScheduler(ctx context.Context, sched *scheduler.Scheduler, log logger.Logger) {
	sched.Start()
	if err := sched.Trigger(ctx, jobHealthCheck); err != nil {
		log.Warn(ctx, "initial health check failed", logger.Error(err))
	}
	for _, name := range []string{jobRescoreSweep, jobHealthCheck} {
		if next := sched.Next(name); !next.IsZero() {
			log.Info(ctx, "job scheduled", logger.String("job", name), logger.String("next_run", next.Format(time.RFC3339)))
		} else {
			log.Info(ctx, "job runs on trigger only", logger.String("job", name))
		}
	}
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service, queueCapacity int) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(ctx, svc, queueCapacity)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level gauges from a stats snapshot.
func updateServiceMetrics(ctx context.Context, svc *app.Service, queueCapacity int) {
	st, err := svc.Stats(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("stats", "snapshot")
		return
	}
	metrics.UpdateQueueSize(st.QueueDepth, queueCapacity)
	metrics.UpdateRankedLeads(st.RankedLeads)
	if st.WorkersRunning {
		metrics.UpdateWorkerCount(st.Workers)
	} else {
		metrics.UpdateWorkerCount(0)
	}
}
