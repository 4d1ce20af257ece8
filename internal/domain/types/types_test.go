package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/revintel/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRankedLead(t *testing.T) {
	Convey("Given a ranked lead", t, func() {
		entry := types.RankedLead{Rank: 1, LeadID: "lead_012", Company: "DataScience Labs", Score: 95, Tier: "hot"}

		Convey("When encoded as JSON", func() {
			b, err := json.Marshal(entry)
			So(err, ShouldBeNil)

			Convey("Then it uses snake_case field names", func() {
				So(string(b), ShouldEqual, `{"rank":1,"lead_id":"lead_012","company":"DataScience Labs","score":95,"tier":"hot"}`)
			})
		})

		Convey("When comparing rows of a ranking", func() {
			rows := []types.RankedLead{
				{Rank: 1, LeadID: "lead_012", Score: 95},
				{Rank: 2, LeadID: "lead_003", Score: 93},
				{Rank: 2, LeadID: "lead_025", Score: 93},
			}

			Convey("Then equal scores share a rank", func() {
				So(rows[1].Rank, ShouldEqual, rows[2].Rank)
				So(rows[0].Score, ShouldBeGreaterThan, rows[1].Score)
			})
		})
	})
}
