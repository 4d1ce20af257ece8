package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/revintel/internal/adapters/predictionlog"
	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/health"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/apperr"
	"github.com/okian/revintel/pkg/logger"
)

func newService(opts ...service.Option) (*service.Service, predictionlog.Log) {
	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	So(err, ShouldBeNil)
	log := predictionlog.NewMemoryLog()
	base := []service.Option{
		service.WithLogger(logger.New(io.Discard)),
		service.WithPredictionLog(log),
		service.WithWorkerCount(2),
	}
	return service.New(engine, append(base, opts...)...), log
}

func logged(ctx context.Context, log predictionlog.Log) int {
	n, err := log.Count(ctx)
	So(err, ShouldBeNil)
	return n
}

func intp(v int) *int { return &v }

func TestScoring(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over the seeded CRM", t, func() {
		svc, log := newService()

		Convey("An ad-hoc lead is scored with defaults and logged", func() {
			res, err := svc.ScoreLead(ctx, service.ScoreLeadRequest{CompanyName: "Initech"})
			So(err, ShouldBeNil)
			So(res.Type, ShouldEqual, model.PredictionLeadScore)
			So(res.Subject, ShouldEqual, "Initech")
			So(res.Score, ShouldBeBetweenOrEqual, 0, 100)
			So(logged(ctx, log), ShouldEqual, 1)

			recs, err := svc.ListPredictions(ctx, model.PredictionLeadScore, 0)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 1)
			So(recs[0].Tier, ShouldEqual, res.Tier)

			var in service.ScoreLeadRequest
			So(json.Unmarshal(recs[0].Input, &in), ShouldBeNil)
			So(in.CompanyName, ShouldEqual, "Initech")
		})

		Convey("Explicit employee count and signals override the defaults", func() {
			small, err := svc.ScoreLead(ctx, service.ScoreLeadRequest{CompanyName: "Tiny", EmployeeCount: intp(1)})
			So(err, ShouldBeNil)
			big, err := svc.ScoreLead(ctx, service.ScoreLeadRequest{
				CompanyName:   "Huge",
				EmployeeCount: intp(5000),
				Signals:       &model.LeadSignals{DemoRequested: true, EmailEngagementScore: 90},
			})
			So(err, ShouldBeNil)
			So(big.Score, ShouldBeGreaterThan, small.Score)
		})

		Convey("A lead id takes precedence and feeds the ranking", func() {
			res, err := svc.ScoreLead(ctx, service.ScoreLeadRequest{LeadID: "lead_001", CompanyName: "ignored"})
			So(err, ShouldBeNil)
			So(res.SubjectID, ShouldEqual, "lead_001")
			So(res.Subject, ShouldEqual, "FutureTech Innovations")

			rank, err := svc.LeadRank(ctx, "lead_001")
			So(err, ShouldBeNil)
			So(rank.Rank, ShouldEqual, 1)
			So(rank.Score, ShouldEqual, res.Score)
		})

		Convey("A request without id or company is a validation error", func() {
			_, err := svc.ScoreLead(ctx, service.ScoreLeadRequest{})
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
			So(logged(ctx, log), ShouldEqual, 0)
		})

		Convey("A negative employee count scores in the smallest size band", func() {
			res, err := svc.ScoreLead(ctx, service.ScoreLeadRequest{CompanyName: "X", EmployeeCount: intp(-5)})
			So(err, ShouldBeNil)
			So(res.Score, ShouldBeGreaterThan, 0)
			var size *scoring.Attribution
			for i := range res.Attributions {
				if res.Attributions[i].Feature == scoring.FeatureCompanySize {
					size = &res.Attributions[i]
				}
			}
			So(size, ShouldNotBeNil)
			So(size.Value, ShouldEqual, 30.0)
		})

		Convey("An unknown account is not found and nothing is logged", func() {
			_, err := svc.AssessChurnRisk(ctx, "acc_999")
			So(apperr.Is(err, apperr.KindNotFound), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "acc_999")
			So(logged(ctx, log), ShouldEqual, 0)
		})

		Convey("A malformed id is a validation error", func() {
			_, err := svc.ScoreLeadByID(ctx, "lead 001; drop")
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)

			_, err = svc.AssessChurnRisk(ctx, "")
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
			So(logged(ctx, log), ShouldEqual, 0)
		})

		Convey("Churn risk is assessed for an at-risk account", func() {
			res, err := svc.AssessChurnRisk(ctx, "acc_006")
			So(err, ShouldBeNil)
			So(res.Type, ShouldEqual, model.PredictionChurnRisk)
			So(res.SubjectID, ShouldEqual, "acc_006")
			So(logged(ctx, log), ShouldEqual, 1)
		})

		Convey("Conversion insights need a trial account", func() {
			_, err := svc.PredictConversion(ctx, "acc_001")
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
			So(errors.Is(err, scoring.ErrNotTrial), ShouldBeTrue)
			So(logged(ctx, log), ShouldEqual, 0)

			res, err := svc.PredictConversion(ctx, "acc_002")
			So(err, ShouldBeNil)
			So(res.Probability, ShouldNotBeNil)
			So(*res.Probability, ShouldBeBetweenOrEqual, 0, 1)
			So(logged(ctx, log), ShouldEqual, 1)
		})
	})
}

func TestCRM(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over the seeded CRM", t, func() {
		svc, _ := newService()

		Convey("Accounts can be listed and filtered by status", func() {
			all, err := svc.ListAccounts(ctx, "")
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 20)

			atRisk, err := svc.ListAccounts(ctx, model.StatusAtRisk)
			So(err, ShouldBeNil)
			So(len(atRisk), ShouldEqual, 3)

			_, err = svc.ListAccounts(ctx, "dormant")
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
		})

		Convey("Single entities resolve or report not found", func() {
			acc, err := svc.GetAccount(ctx, "acc_001")
			So(err, ShouldBeNil)
			So(acc.Company, ShouldEqual, "Acme Corp")

			lead, err := svc.GetLead(ctx, "lead_002")
			So(err, ShouldBeNil)
			So(lead.Company, ShouldEqual, "StartupHub")

			_, err = svc.GetLead(ctx, "lead_999")
			So(apperr.Is(err, apperr.KindNotFound), ShouldBeTrue)

			leads, err := svc.ListLeads(ctx)
			So(err, ShouldBeNil)
			So(len(leads), ShouldEqual, 30)
		})
	})
}

func TestPredictionLog(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty prediction log", t, func() {
		svc, plog := newService()

		Convey("Model health reports insufficient data", func() {
			rep, err := svc.CheckModelHealth(ctx)
			So(err, ShouldBeNil)
			So(rep.Volume, ShouldEqual, 0)
			So(rep.Status, ShouldEqual, health.StatusInsufficientData)
			So(rep.ModelVersion, ShouldEqual, "v1.2.3")
		})

		Convey("External predictions are logged with their tier", func() {
			resp, err := svc.LogPrediction(ctx, service.LogPredictionRequest{
				PredictionType:   model.PredictionChurnRisk,
				InputData:        json.RawMessage(`{"account_id":"acc_003"}`),
				PredictionResult: json.RawMessage(`{"score":55,"tier":"medium"}`),
			})
			So(err, ShouldBeNil)
			So(resp.LogID, ShouldNotBeEmpty)
			So(resp.Status, ShouldEqual, "logged")

			recs, err := svc.ListPredictions(ctx, "", 10)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 1)
			So(recs[0].ID, ShouldEqual, resp.LogID)
			So(recs[0].Tier, ShouldEqual, "medium")
			So(recs[0].ModelVersion, ShouldEqual, "v1.2.3")

			none, err := svc.ListPredictions(ctx, model.PredictionLeadScore, 10)
			So(err, ShouldBeNil)
			So(none, ShouldBeEmpty)

			rep, err := svc.CheckModelHealth(ctx)
			So(err, ShouldBeNil)
			So(rep.Volume, ShouldEqual, 1)
		})

		Convey("Malformed log requests are rejected", func() {
			_, err := svc.LogPrediction(ctx, service.LogPredictionRequest{
				PredictionType:   "revenue_forecast",
				InputData:        json.RawMessage(`{}`),
				PredictionResult: json.RawMessage(`{}`),
			})
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)

			_, err = svc.LogPrediction(ctx, service.LogPredictionRequest{
				PredictionType:   model.PredictionLeadScore,
				InputData:        json.RawMessage(`{`),
				PredictionResult: json.RawMessage(`{}`),
			})
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)

			_, err = svc.ListPredictions(ctx, "bogus", 0)
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
		})

		Convey("Results that are not JSON objects are rejected before logging", func() {
			for _, result := range []string{`[{"tier":"hot"}]`, `"hot"`, `null`, `{"tier":7}`} {
				_, err := svc.LogPrediction(ctx, service.LogPredictionRequest{
					PredictionType:   model.PredictionLeadScore,
					InputData:        json.RawMessage(`{}`),
					PredictionResult: json.RawMessage(result),
				})
				So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "prediction_result")
			}
			So(logged(ctx, plog), ShouldEqual, 0)
		})

		Convey("Metadata describes the configured model", func() {
			md := svc.ModelMetadata()
			So(md.Name, ShouldEqual, "lead_scorer")
			So(md.Version, ShouldEqual, "v1.2.3")
			So(md.Weights[string(model.PredictionLeadScore)], ShouldNotBeEmpty)
			So(md.Tiers[string(model.PredictionChurnRisk)], ShouldNotBeEmpty)
		})
	})
}

func TestRanking(t *testing.T) {
	ctx := context.Background()

	Convey("Given a few scored leads", t, func() {
		svc, _ := newService(service.WithMaxTopLeads(5))
		for _, id := range []string{"lead_001", "lead_002", "lead_003"} {
			_, err := svc.ScoreLeadByID(ctx, id)
			So(err, ShouldBeNil)
		}

		Convey("Top leads come back in score order", func() {
			top, err := svc.TopLeads(ctx, 0)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 3)
			So(top[0].Score, ShouldBeGreaterThanOrEqualTo, top[1].Score)
			So(top[1].Score, ShouldBeGreaterThanOrEqualTo, top[2].Score)
		})

		Convey("Limits above the maximum are rejected", func() {
			_, err := svc.TopLeads(ctx, 6)
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
			_, err = svc.TopLeads(ctx, -1)
			So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
		})

		Convey("An existing but unscored lead has no rank yet", func() {
			_, err := svc.LeadRank(ctx, "lead_010")
			So(apperr.Is(err, apperr.KindNotFound), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "not been scored")

			_, err = svc.LeadRank(ctx, "lead_999")
			So(apperr.Is(err, apperr.KindNotFound), ShouldBeTrue)
		})
	})
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service without running workers", t, func() {
		svc, _ := newService()

		Convey("A sweep is refused", func() {
			_, err := svc.EnqueueSweep(ctx)
			So(apperr.Is(err, apperr.KindUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a started service", t, func() {
		svc, log := newService()
		So(svc.Start(ctx), ShouldBeNil)

		res, err := svc.EnqueueSweep(ctx)
		So(err, ShouldBeNil)
		So(res.SweepID, ShouldNotBeEmpty)
		So(res.Queued+res.Skipped, ShouldEqual, 30+20+3)

		Convey("Stopping drains every queued job", func() {
			n := 0
			deadline := time.Now().Add(5 * time.Second)
			for time.Now().Before(deadline) {
				n = logged(ctx, log)
				if n == res.Queued {
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
			So(n, ShouldEqual, res.Queued)

			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			So(svc.Stop(stopCtx), ShouldBeNil)

			top, err := svc.TopLeads(ctx, 50)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 30)
		})
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	Convey("Stats reflect logged predictions and ranked leads", t, func() {
		svc, _ := newService()
		_, err := svc.ScoreLeadByID(ctx, "lead_001")
		So(err, ShouldBeNil)
		_, err = svc.AssessChurnRisk(ctx, "acc_001")
		So(err, ShouldBeNil)

		st, err := svc.Stats(ctx)
		So(err, ShouldBeNil)
		So(st.ModelVersion, ShouldEqual, "v1.2.3")
		So(st.Predictions, ShouldEqual, 2)
		So(st.RankedLeads, ShouldEqual, 1)
		So(st.WorkersRunning, ShouldBeFalse)
		So(st.Workers, ShouldEqual, 2)
	})
}
