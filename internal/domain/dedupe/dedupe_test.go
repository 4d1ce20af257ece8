package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/revintel/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d.Size(), ShouldEqual, 0)

		Convey("When a key is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "lead:lead_001")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports it as in flight", func() {
				So(d.SeenAndRecord(ctx, "lead:lead_001"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording releases it", func() {
				d.Unrecord(ctx, "lead:lead_001")
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "lead:lead_001"), ShouldBeFalse)
			})
		})

		Convey("When an unknown key is unrecorded", func() {
			d.SeenAndRecord(ctx, "account:acc_001")
			d.Unrecord(ctx, "account:acc_404")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a bounded deduper at capacity", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 1; i <= 3; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
		}

		Convey("When a new key arrives", func() {
			So(d.SeenAndRecord(ctx, "k4"), ShouldBeFalse)

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "k4"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k3"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k1"), ShouldBeFalse)
			})
		})

		Convey("When a middle key is released and re-added", func() {
			d.Unrecord(ctx, "k2")
			d.SeenAndRecord(ctx, "k2")
			d.SeenAndRecord(ctx, "k5")

			Convey("Then eviction still follows insertion order", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "k2"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k5"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 20000; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
		}
		So(d.Size(), ShouldEqual, 20000)
		So(d.SeenAndRecord(ctx, "k0"), ShouldBeTrue)
	})

	Convey("Given concurrent callers racing on the same keys", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			fresh int
		)
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each key is claimed exactly once", func() {
			So(fresh, ShouldEqual, 100)
			So(d.Size(), ShouldEqual, 100)
		})
	})
}
