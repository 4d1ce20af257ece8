package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/okian/revintel/pkg/apperr"
	. "github.com/smartystreets/goconvey/convey"
)

type sample struct {
	Name  string `validate:"required"`
	Score int    `validate:"gte=0,lte=100"`
	Inner inner
}

type inner struct {
	Count int `validate:"gte=0"`
}

func TestAppErr(t *testing.T) {
	Convey("Given typed application errors", t, func() {
		Convey("Kinds map to HTTP statuses", func() {
			So(apperr.NotFound("op", "account %s", "acc_999").HTTPStatus(), ShouldEqual, http.StatusNotFound)
			So(apperr.Validation("op", "bad").HTTPStatus(), ShouldEqual, http.StatusBadRequest)
			So(apperr.Unavailable("op", "full").HTTPStatus(), ShouldEqual, http.StatusServiceUnavailable)
			So(apperr.Config("op", "weights").HTTPStatus(), ShouldEqual, http.StatusInternalServerError)
			So(apperr.StatusOf(errors.New("plain")), ShouldEqual, http.StatusInternalServerError)
		})

		Convey("Kinds survive wrapping with fmt.Errorf", func() {
			err := fmt.Errorf("outer: %w", apperr.NotFound("repo.get", "lead %s not found", "lead_404"))
			So(apperr.Is(err, apperr.KindNotFound), ShouldBeTrue)
			So(apperr.Is(err, apperr.KindValidation), ShouldBeFalse)
			So(apperr.KindOf(errors.New("x")), ShouldEqual, apperr.KindUnknown)
			So(apperr.Is(nil, apperr.KindUnknown), ShouldBeFalse)
		})

		Convey("Wrap keeps the cause reachable", func() {
			cause := errors.New("disk full")
			err := apperr.Wrap(apperr.KindInternal, "log.append", cause)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "log.append: disk full")
		})

		Convey("Validator errors become field details", func() {
			v := validator.New()
			verr := v.Struct(sample{Score: 120})
			So(verr, ShouldNotBeNil)

			err := apperr.FromValidator("score_lead", verr)
			So(err.Kind, ShouldEqual, apperr.KindValidation)
			So(len(err.Fields), ShouldEqual, 2)
			So(err.Fields[0].Field, ShouldEqual, "Name")
			So(err.Fields[0].Message, ShouldEqual, "is required")
			So(err.Fields[1].Field, ShouldEqual, "Score")
			So(err.Fields[1].Message, ShouldEqual, "must be <= 100")
			So(err.Error(), ShouldContainSubstring, "invalid request")
			So(err.Error(), ShouldNotContainSubstring, "sample")
		})

		Convey("Nested field errors keep their path below the request", func() {
			v := validator.New()
			err := apperr.FromValidator("score_lead", v.Struct(sample{Name: "x", Inner: inner{Count: -1}}))
			So(len(err.Fields), ShouldEqual, 1)
			So(err.Fields[0].Field, ShouldEqual, "Inner.Count")
		})

		Convey("Single value errors are reported under the given field", func() {
			v := validator.New()
			verr := v.Var("", "required")
			err := apperr.FromVar("get_account", "account_id", verr)
			So(err.Fields[0].Field, ShouldEqual, "account_id")
			So(err.Message, ShouldEqual, "invalid account_id")
			So(err.Error(), ShouldEqual, "get_account: invalid account_id (account_id is required)")
		})

		Convey("Kind names are stable", func() {
			So(apperr.KindValidation.String(), ShouldEqual, "validation_error")
			So(apperr.KindNotFound.String(), ShouldEqual, "not_found")
			So(apperr.KindConfig.String(), ShouldEqual, "config_error")
		})
	})
}
