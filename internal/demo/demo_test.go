package demo_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/revintel/internal/adapters/http/api"
	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/demo"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/logger"
)

func newServer() *httptest.Server {
	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	if err != nil {
		panic(err)
	}
	svc := service.New(engine, service.WithLogger(logger.New(io.Discard)))
	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		srv := newServer()
		defer srv.Close()

		cfg := demo.Config{BaseURL: srv.URL, Workers: 4, Timeout: 5 * time.Second, TopN: 10}
		var out bytes.Buffer

		Convey("The demo scores the whole CRM and checks the ranking", func() {
			sum, err := demo.Run(context.Background(), cfg, logger.New(io.Discard), &out)
			So(err, ShouldBeNil)

			So(sum.LeadsScored, ShouldEqual, 30)
			So(sum.AccountsAssessed, ShouldEqual, 20)
			So(sum.TrialsPredicted, ShouldEqual, 3)
			So(sum.Failed, ShouldEqual, 0)
			So(sum.Volume, ShouldEqual, 53)
			So(len(sum.Top), ShouldEqual, 10)
			So(sum.Top[0].Rank, ShouldEqual, 1)

			leadTiers := 0
			for _, n := range sum.Tiers[string(model.PredictionLeadScore)] {
				leadTiers += n
			}
			So(leadTiers, ShouldEqual, 30)

			So(out.String(), ShouldContainSubstring, "leads scored:       30")
			So(out.String(), ShouldContainSubstring, "Top 10 leads")
		})

		Convey("An invalid top limit surfaces the API error", func() {
			cfg.TopN = 1000
			_, err := demo.Run(context.Background(), cfg, logger.New(io.Discard), &out)

			var apiErr *demo.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusBadRequest)
			So(apiErr.Code, ShouldEqual, "validation_error")
		})
	})

	Convey("Given no service at the base URL", t, func() {
		srv := newServer()
		url := srv.URL
		srv.Close()

		_, err := demo.Run(context.Background(), demo.Config{BaseURL: url, Workers: 1, Timeout: time.Second, TopN: 5}, logger.New(io.Discard), io.Discard)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "service health check failed")
	})
}
