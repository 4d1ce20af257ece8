package demo

import (
	"errors"
	"fmt"

	"github.com/okian/revintel/internal/domain/types"
)

// verifyRanking checks that top is sorted, densely ranked and led by the
// best lead score observed while scoring.
func verifyRanking(top []types.RankedLead, best int) error {
	if len(top) == 0 {
		if best < 0 {
			return nil
		}
		return errors.New("empty ranking after scoring leads")
	}

	if top[0].Rank != 1 {
		return fmt.Errorf("first entry has rank %d", top[0].Rank)
	}
	if top[0].Score != best {
		return fmt.Errorf("top score %d does not match best scored lead %d", top[0].Score, best)
	}

	for i := 1; i < len(top); i++ {
		prev, cur := top[i-1], top[i]
		switch {
		case cur.Score > prev.Score:
			return fmt.Errorf("entry %d (%s) outscores entry %d", i, cur.LeadID, i-1)
		case cur.Score == prev.Score && cur.Rank != prev.Rank:
			return fmt.Errorf("tied entries %s and %s have ranks %d and %d", prev.LeadID, cur.LeadID, prev.Rank, cur.Rank)
		case cur.Score < prev.Score && cur.Rank != prev.Rank+1:
			return fmt.Errorf("rank gap between %s (%d) and %s (%d)", prev.LeadID, prev.Rank, cur.LeadID, cur.Rank)
		}
	}
	return nil
}
