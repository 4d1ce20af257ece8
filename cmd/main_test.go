package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/revintel/internal/config"
	"github.com/okian/revintel/pkg/apperr"
	"github.com/okian/revintel/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		log := logger.New(io.Discard)
		cfg := config.New()
		cfg.WorkerCount = 2

		convey.Convey("When building the service with the in-memory log", func() {
			svc, err := newService(cfg, log)
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = svc.Stop(ctx) }()

			convey.Convey("Then the HTTP mux serves the API and docs", func() {
				mux := newMux(ctx, svc)
				for _, path := range []string{"/", "/healthz", "/openapi.yaml", "/api-docs", "/v1/accounts", "/v1/model/metadata"} {
					rec := httptest.NewRecorder()
					mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
					convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("Then the scheduled jobs can be triggered by name", func() {
				sched, err := newScheduler(cfg, svc, log)
				convey.So(err, convey.ShouldBeNil)

				convey.So(sched.Trigger(ctx, jobHealthCheck), convey.ShouldBeNil)

				err = sched.Trigger(ctx, jobRescoreSweep)
				convey.So(apperr.Is(err, apperr.KindUnavailable), convey.ShouldBeTrue)

				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				convey.So(sched.Trigger(ctx, jobRescoreSweep), convey.ShouldBeNil)
			})

			convey.Convey("Then starting the scheduler checks health and reports next runs", func() {
				cfg.HealthCheckSchedule = ""
				var buf bytes.Buffer
				sched, err := newScheduler(cfg, svc, logger.New(io.Discard))
				convey.So(err, convey.ShouldBeNil)

				startScheduler(ctx, sched, logger.New(&buf))
				defer func() { _ = sched.Stop(ctx) }()

				convey.So(sched.Next(jobRescoreSweep).IsZero(), convey.ShouldBeFalse)
				convey.So(sched.Next(jobHealthCheck).IsZero(), convey.ShouldBeTrue)
				convey.So(buf.String(), convey.ShouldContainSubstring, "job scheduled")
				convey.So(buf.String(), convey.ShouldContainSubstring, "job runs on trigger only")
				convey.So(buf.String(), convey.ShouldNotContainSubstring, "initial health check failed")
			})

			convey.Convey("Then service metrics can be refreshed", func() {
				convey.So(func() { updateServiceMetrics(ctx, svc, cfg.QueueSize) }, convey.ShouldNotPanic)
				convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When the prediction log path is set", func() {
			cfg.PredictionLogPath = filepath.Join(t.TempDir(), "predictions.db")
			svc, err := newService(cfg, log)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then predictions are persisted to the bbolt file", func() {
				_, err := svc.CheckModelHealth(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.Stop(ctx), convey.ShouldBeNil)

				_, err = os.Stat(cfg.PredictionLogPath)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the model configuration is invalid", func() {
			cfg.Model.Lead.Weights = map[string]float64{"company_size": 0.5}
			_, err := newService(cfg, log)

			convey.Convey("Then the engine refuses to start", func() {
				convey.So(apperr.Is(err, apperr.KindConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the metrics updaters run until cancelled", func() {
			svc, err := newService(cfg, log)
			convey.So(err, convey.ShouldBeNil)
			tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(tctx)
				startServiceMetricsUpdater(tctx, svc, cfg.QueueSize)
			}, convey.ShouldNotPanic)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given the process entrypoint", t, func() {
		defer func() {
			_ = os.Unsetenv("REVINTEL_TRANSPORT")
			_ = os.Unsetenv("REVINTEL_ADDR")
			_ = os.Unsetenv("REVINTEL_LOG_LEVEL")
		}()
		_ = os.Setenv("REVINTEL_LOG_LEVEL", "error")

		convey.Convey("When the configuration is invalid", func() {
			_ = os.Setenv("REVINTEL_TRANSPORT", "grpc")
			err := run(context.Background())

			convey.Convey("Then run fails before serving", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When HTTP is served and the context is cancelled", func() {
			_ = os.Setenv("REVINTEL_TRANSPORT", "http")
			_ = os.Setenv("REVINTEL_ADDR", "127.0.0.1:0")
			ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
			defer cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				convey.So(run(ctx), convey.ShouldBeNil)
			})
		})
	})
}
