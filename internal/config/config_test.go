package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/revintel/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Transport, convey.ShouldEqual, config.TransportHTTP)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.MaxTopLeads, convey.ShouldEqual, 100)
			convey.So(cfg.PredictionLogPath, convey.ShouldBeEmpty)
			convey.So(cfg.Model.ModelVersion, convey.ShouldEqual, "v1.2.3")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then transports are derived from the transport setting", func() {
			convey.So(cfg.ServesHTTP(), convey.ShouldBeTrue)
			convey.So(cfg.ServesStdio(), convey.ShouldBeFalse)

			cfg.Transport = config.TransportBoth
			convey.So(cfg.ServesHTTP(), convey.ShouldBeTrue)
			convey.So(cfg.ServesStdio(), convey.ShouldBeTrue)

			cfg.Transport = config.TransportStdio
			convey.So(cfg.ServesHTTP(), convey.ShouldBeFalse)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("An unknown transport is rejected", func() {
			cfg.Transport = "grpc"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty addr is only allowed for stdio", func() {
			cfg.Addr = ""
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "Addr")

			cfg.Transport = config.TransportStdio
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Schedules must parse as cron specs", func() {
			cfg.RescoreSchedule = "every hour"
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "RescoreSchedule")

			cfg.RescoreSchedule = "@every 30m"
			cfg.HealthCheckSchedule = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Sizes must be positive", func() {
			cfg.WorkerCount = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Model weights must still sum to one", func() {
			cfg.Model.Lead.Weights["intent_signals"] = 0.9
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "model")
		})
	})
}
