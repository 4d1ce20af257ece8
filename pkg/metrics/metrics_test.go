package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithLatencyBuckets([]float64{1, 10}),
				WithConstLabels(prometheus.Labels{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.predictions.WithLabelValues("lead_score", "hot").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_predictions_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Prediction counters are labelled by type and tier", func() {
			before := testutil.ToFloat64(globalManager.predictions.WithLabelValues("churn_risk", "critical"))
			RecordPrediction("churn_risk", "critical")
			after := testutil.ToFloat64(globalManager.predictions.WithLabelValues("churn_risk", "critical"))
			So(after-before, ShouldEqual, 1.0)
		})

		Convey("Drift gauges hold the last evaluation", func() {
			UpdateDrift("lead_score", 0.15, 1)
			So(testutil.ToFloat64(globalManager.driftDeviation.WithLabelValues("lead_score")), ShouldEqual, 0.15)
			So(testutil.ToFloat64(globalManager.driftStatus.WithLabelValues("lead_score")), ShouldEqual, 1.0)
		})

		Convey("Queue utilization follows size and capacity", func() {
			UpdateQueueSize(25, 100)
			So(testutil.ToFloat64(globalManager.queueUtilization), ShouldEqual, 0.25)
			UpdateQueueSize(0, 0)
			So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 0)
		})

		Convey("Recording helpers never panic", func() {
			So(func() {
				RecordPredictionError("lead_score", "validation_error")
				RecordScoringLatency("lead_score", 0.2)
				RecordLogAppend()
				RecordLogError()
				UpdateLogSize(3)
				RecordHealthCheck()
				RecordRepositoryLookup("account", "miss")
				UpdateRankedLeads(30)
				RecordHTTPRequest("score_lead", "POST", "200")
				RecordHTTPRequestDuration("score_lead", "POST", "200", 1.5)
				RecordErrorByEndpoint("score_lead", "POST", "client_error")
				RecordMCPRequest("tools/call", "ok")
				UpdateQueueCapacity(100)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError("queue_full")
				UpdateWorkerCount(4)
				RecordJobProcessed("lead_score", "ok")
				RecordWorkerProcessingLatency(2)
				RecordScheduledRun("rescore", "ok")
				RecordErrorByComponent("worker", "not_found")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("The custom registry exposes service metrics only", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "revintel_scoring_"), ShouldBeTrue)
			}
		})
	})
}
