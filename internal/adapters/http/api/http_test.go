package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/revintel/internal/adapters/http/api"
	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fields  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func newMux() (*http.ServeMux, *service.Service) {
	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	So(err, ShouldBeNil)
	svc := service.New(engine, service.WithLogger(logger.New(io.Discard)), service.WithWorkerCount(2))
	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	return mux, svc
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
	return v
}

func TestLeadRoutes(t *testing.T) {
	Convey("Given the API over a seeded service", t, func() {
		mux, _ := newMux()

		Convey("POST /v1/leads/score scores an ad-hoc company", func() {
			w := do(mux, http.MethodPost, "/v1/leads/score",
				`{"company_name":"Initech","industry":"finance","employee_count":250,"signals":{"demo_requested":true}}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")

			res := decode[scoring.Result](w)
			So(res.Subject, ShouldEqual, "Initech")
			So(res.Score, ShouldBeBetweenOrEqual, 0, 100)
			So(res.Attributions, ShouldNotBeEmpty)
		})

		Convey("POST /v1/leads/score scores a CRM lead and ranks it", func() {
			w := do(mux, http.MethodPost, "/v1/leads/score", `{"lead_id":"lead_001"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			w = do(mux, http.MethodGet, "/v1/leads/lead_001/rank", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"rank":1`)

			w = do(mux, http.MethodGet, "/v1/leads/top?limit=5", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "lead_001")
		})

		Convey("An empty score request is a 400 with field detail", func() {
			w := do(mux, http.MethodPost, "/v1/leads/score", `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decode[errorBody](w)
			So(body.Code, ShouldEqual, "validation_error")
			So(body.Fields, ShouldNotBeEmpty)
		})

		Convey("Malformed or unknown JSON is a 400", func() {
			So(do(mux, http.MethodPost, "/v1/leads/score", `{"company_name":`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodPost, "/v1/leads/score", `{"company":"x"}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodPost, "/v1/leads/score", `{"company_name":"x"} {}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Unknown leads are 404", func() {
			w := do(mux, http.MethodPost, "/v1/leads/score", `{"lead_id":"lead_999"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode[errorBody](w).Code, ShouldEqual, "not_found")

			So(do(mux, http.MethodGet, "/v1/leads/lead_999", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodGet, "/v1/leads/lead_002/rank", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("GET /v1/leads lists every CRM lead", func() {
			w := do(mux, http.MethodGet, "/v1/leads", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(decode[[]map[string]any](w)), ShouldEqual, 30)
		})

		Convey("GET /v1/leads/{id} returns the CRM record", func() {
			w := do(mux, http.MethodGet, "/v1/leads/lead_002", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "StartupHub")
		})

		Convey("Bad top limits are 400", func() {
			So(do(mux, http.MethodGet, "/v1/leads/top?limit=abc", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodGet, "/v1/leads/top?limit=1000", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Wrong methods are rejected by the router", func() {
			So(do(mux, http.MethodGet, "/v1/leads/score", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodDelete, "/v1/accounts/acc_001", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestAccountRoutes(t *testing.T) {
	Convey("Given the API over a seeded service", t, func() {
		mux, _ := newMux()

		Convey("Accounts can be listed and filtered", func() {
			w := do(mux, http.MethodGet, "/v1/accounts", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(decode[[]map[string]any](w)), ShouldEqual, 20)

			w = do(mux, http.MethodGet, "/v1/accounts?status=trial", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(decode[[]map[string]any](w)), ShouldEqual, 3)

			So(do(mux, http.MethodGet, "/v1/accounts?status=gone", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Churn risk is served per account", func() {
			w := do(mux, http.MethodGet, "/v1/accounts/acc_006/churn", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			res := decode[scoring.Result](w)
			So(res.SubjectID, ShouldEqual, "acc_006")

			So(do(mux, http.MethodGet, "/v1/accounts/acc_999/churn", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Conversion insights reject paid accounts", func() {
			So(do(mux, http.MethodGet, "/v1/accounts/acc_002/conversion", "").Code, ShouldEqual, http.StatusOK)

			w := do(mux, http.MethodGet, "/v1/accounts/acc_001/conversion", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode[errorBody](w).Message, ShouldContainSubstring, "trial")
		})
	})
}

func TestModelAndPredictionRoutes(t *testing.T) {
	Convey("Given the API over a fresh service", t, func() {
		mux, _ := newMux()

		Convey("Model health starts with insufficient data", func() {
			w := do(mux, http.MethodGet, "/v1/model/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode[map[string]any](w)
			So(body["status"], ShouldEqual, "insufficient_data")
			So(body["prediction_volume"], ShouldEqual, float64(0))
		})

		Convey("Metadata names the model", func() {
			w := do(mux, http.MethodGet, "/v1/model/metadata", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"model_name":"lead_scorer"`)
		})

		Convey("Predictions can be logged and listed", func() {
			w := do(mux, http.MethodPost, "/v1/predictions",
				`{"prediction_type":"lead_score","input_data":{"lead_id":"x"},"prediction_result":{"score":80,"tier":"hot"}}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(decode[service.LogPredictionResponse](w).LogID, ShouldNotBeEmpty)

			w = do(mux, http.MethodGet, "/v1/predictions?type=lead_score&limit=5", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(decode[[]map[string]any](w)), ShouldEqual, 1)

			So(do(mux, http.MethodGet, "/v1/predictions?type=nope", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Logging an unknown prediction type is a 400", func() {
			w := do(mux, http.MethodPost, "/v1/predictions",
				`{"prediction_type":"forecast","input_data":{},"prediction_result":{}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given the API over a service", t, func() {
		mux, svc := newMux()

		Convey("GET /healthz serves Prometheus metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("GET /stats reports the service summary", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"model_version":"v1.2.3"`)
		})

		Convey("POST /v1/rescore needs running workers", func() {
			w := do(mux, http.MethodPost, "/v1/rescore", "")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(decode[errorBody](w).Code, ShouldEqual, "unavailable")

			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)
			defer func() { So(svc.Stop(ctx), ShouldBeNil) }()

			w = do(mux, http.MethodPost, "/v1/rescore", "")
			So(w.Code, ShouldEqual, http.StatusAccepted)
			So(decode[service.SweepResult](w).SweepID, ShouldNotBeEmpty)
		})
	})
}
