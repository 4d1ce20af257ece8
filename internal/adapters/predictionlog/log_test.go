package predictionlog_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/revintel/internal/adapters/predictionlog"
	"github.com/okian/revintel/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

func record(t model.PredictionType, tier string) model.PredictionRecord {
	return model.PredictionRecord{
		Type:         t,
		ModelVersion: "v1.2.3",
		Tier:         tier,
		Input:        json.RawMessage(`{"lead_id":"lead_001"}`),
		Result:       json.RawMessage(`{"score":92}`),
	}
}

func exerciseLog(open func(opts ...predictionlog.Option) predictionlog.Log) {
	ctx := context.Background()
	start := time.Date(2024, 11, 4, 9, 0, 0, 0, time.UTC)
	clk := &clock{t: start}
	l := open(predictionlog.WithClock(clk.now))

	Reset(func() { _ = l.Close() })

	Convey("An empty log has nothing to report", func() {
		n, err := l.Count(ctx)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 0)

		recs, err := l.Query(ctx, predictionlog.Filter{})
		So(err, ShouldBeNil)
		So(recs, ShouldBeEmpty)
	})

	Convey("Appends get ids and timestamps", func() {
		id, err := l.Append(ctx, record(model.PredictionLeadScore, "hot"))
		So(err, ShouldBeNil)
		So(id, ShouldNotBeEmpty)

		recs, _ := l.Query(ctx, predictionlog.Filter{})
		So(len(recs), ShouldEqual, 1)
		So(recs[0].ID, ShouldEqual, id)
		So(recs[0].Timestamp.Equal(start.Add(time.Minute)), ShouldBeTrue)
		So(string(recs[0].Result), ShouldEqual, `{"score":92}`)
	})

	Convey("Caller supplied ids and timestamps are kept", func() {
		rec := record(model.PredictionChurnRisk, "low")
		rec.ID = "fixed-id"
		rec.Timestamp = start.Add(-time.Hour)
		id, err := l.Append(ctx, rec)
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "fixed-id")

		recs, _ := l.Query(ctx, predictionlog.Filter{})
		So(recs[0].Timestamp.Equal(start.Add(-time.Hour)), ShouldBeTrue)
	})

	Convey("Unknown prediction types are rejected", func() {
		_, err := l.Append(ctx, record("sentiment", ""))
		So(errors.Is(err, predictionlog.ErrInvalidRecord), ShouldBeTrue)
		n, _ := l.Count(ctx)
		So(n, ShouldEqual, 0)
	})

	Convey("Given a mix of records", func() {
		for i := 0; i < 5; i++ {
			_, _ = l.Append(ctx, record(model.PredictionLeadScore, fmt.Sprintf("t%d", i)))
			_, _ = l.Append(ctx, record(model.PredictionChurnRisk, "low"))
		}

		Convey("Query returns newest first and honours the filter", func() {
			leads, err := l.Query(ctx, predictionlog.Filter{Type: model.PredictionLeadScore, Limit: 3})
			So(err, ShouldBeNil)
			So(len(leads), ShouldEqual, 3)
			So(leads[0].Tier, ShouldEqual, "t4")
			So(leads[2].Tier, ShouldEqual, "t2")

			all, _ := l.Query(ctx, predictionlog.Filter{})
			So(len(all), ShouldEqual, 10)
			So(all[0].Timestamp.After(all[9].Timestamp), ShouldBeTrue)
		})

		Convey("Recent returns the window oldest first", func() {
			recs, err := l.Recent(ctx, start.Add(7*time.Minute))
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 4)
			So(recs[0].Timestamp.Equal(start.Add(7*time.Minute)), ShouldBeTrue)
		})

		Convey("Count reports every append", func() {
			n, err := l.Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 10)
		})

		Convey("Returned records do not alias stored ones", func() {
			recs, _ := l.Query(ctx, predictionlog.Filter{Limit: 1})
			recs[0].Result[0] = 'X'
			again, _ := l.Query(ctx, predictionlog.Filter{Limit: 1})
			So(string(again[0].Result), ShouldEqual, `{"score":92}`)
		})
	})

	Convey("Concurrent appends are all kept", func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = l.Append(ctx, record(model.PredictionConversion, "likely"))
			}()
		}
		wg.Wait()
		n, _ := l.Count(ctx)
		So(n, ShouldEqual, 50)
	})

	Convey("A closed log refuses work", func() {
		So(l.Close(), ShouldBeNil)
		_, err := l.Count(ctx)
		So(errors.Is(err, predictionlog.ErrClosed), ShouldBeTrue)
	})
}

func TestMemoryLog(t *testing.T) {
	Convey("Given an in-memory prediction log", t, func() {
		exerciseLog(func(opts ...predictionlog.Option) predictionlog.Log {
			return predictionlog.NewMemoryLog(opts...)
		})
	})
}

func TestBoltLog(t *testing.T) {
	Convey("Given a bbolt prediction log", t, func() {
		path := filepath.Join(t.TempDir(), "predictions.db")
		exerciseLog(func(opts ...predictionlog.Option) predictionlog.Log {
			l, err := predictionlog.OpenBoltLog(path, opts...)
			So(err, ShouldBeNil)
			return l
		})
	})

	Convey("Given a bbolt log reopened from disk", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "predictions.db")

		l, err := predictionlog.OpenBoltLog(path)
		So(err, ShouldBeNil)
		id, err := l.Append(ctx, record(model.PredictionLeadScore, "warm"))
		So(err, ShouldBeNil)
		So(l.Close(), ShouldBeNil)

		reopened, err := predictionlog.OpenBoltLog(path)
		So(err, ShouldBeNil)
		defer reopened.Close()

		recs, err := reopened.Query(ctx, predictionlog.Filter{})
		So(err, ShouldBeNil)
		So(len(recs), ShouldEqual, 1)
		So(recs[0].ID, ShouldEqual, id)
		So(recs[0].Tier, ShouldEqual, "warm")
	})
}
