package demo

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/revintel/internal/domain/types"
)

func TestVerifyRanking(t *testing.T) {
	Convey("Given a dense ranking", t, func() {
		top := []types.RankedLead{
			{Rank: 1, LeadID: "lead_012", Score: 95},
			{Rank: 2, LeadID: "lead_003", Score: 93},
			{Rank: 2, LeadID: "lead_025", Score: 93},
			{Rank: 3, LeadID: "lead_001", Score: 88},
		}

		So(verifyRanking(top, 95), ShouldBeNil)
		So(verifyRanking(top, 97), ShouldNotBeNil)

		Convey("Gaps, split ties and disorder are reported", func() {
			gap := append([]types.RankedLead(nil), top...)
			gap[3].Rank = 4
			So(verifyRanking(gap, 95), ShouldNotBeNil)

			split := append([]types.RankedLead(nil), top...)
			split[2].Rank = 3
			So(verifyRanking(split, 95), ShouldNotBeNil)

			unsorted := append([]types.RankedLead(nil), top...)
			unsorted[3].Score = 99
			So(verifyRanking(unsorted, 95), ShouldNotBeNil)
		})

		Convey("An empty ranking is fine only when nothing was scored", func() {
			So(verifyRanking(nil, -1), ShouldBeNil)
			So(verifyRanking(nil, 40), ShouldNotBeNil)
		})
	})
}
