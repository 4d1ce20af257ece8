package ranking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
)

func TestStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if n := s.Count(ctx); n != 0 {
		t.Fatalf("expected empty store, got %d", n)
	}

	s.Upsert(ctx, "lead_001", "FutureTech Innovations", 92, "hot")

	entry, err := s.Rank(ctx, "lead_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Rank != 1 || entry.Score != 92 || entry.Tier != "hot" || entry.Company != "FutureTech Innovations" {
		t.Errorf("unexpected entry %+v", entry)
	}

	top, err := s.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 1 || top[0].LeadID != "lead_001" {
		t.Errorf("unexpected top %+v", top)
	}
}

func TestStore_UpsertReplacesScore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	s.Upsert(ctx, "lead_001", "A", 80, "hot")
	s.Upsert(ctx, "lead_002", "B", 60, "warm")
	s.Upsert(ctx, "lead_001", "A", 30, "cold")

	if n := s.Count(ctx); n != 2 {
		t.Fatalf("expected 2 leads, got %d", n)
	}
	if nsize(s.root) != 2 {
		t.Fatalf("treap holds %d nodes, want 2", nsize(s.root))
	}

	top, _ := s.TopN(ctx, 2)
	if top[0].LeadID != "lead_002" || top[1].LeadID != "lead_001" || top[1].Score != 30 {
		t.Errorf("latest score must win, got %+v", top)
	}
}

func TestStore_TiesShareRank(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	s.Upsert(ctx, "lead_003", "C", 90, "hot")
	s.Upsert(ctx, "lead_001", "A", 90, "hot")
	s.Upsert(ctx, "lead_002", "B", 75, "hot")
	s.Upsert(ctx, "lead_004", "D", 40, "warm")

	top, err := s.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantIDs := []string{"lead_001", "lead_003", "lead_002", "lead_004"}
	wantRanks := []int{1, 1, 2, 3}
	for i, e := range top {
		if e.LeadID != wantIDs[i] || e.Rank != wantRanks[i] {
			t.Errorf("row %d = %+v, want %s rank %d", i, e, wantIDs[i], wantRanks[i])
		}
	}

	entry, _ := s.Rank(ctx, "lead_004")
	if entry.Rank != 3 {
		t.Errorf("expected rank 3, got %d", entry.Rank)
	}
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Rank(ctx, "lead_404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	for _, n := range []int{0, -1} {
		if _, err := s.TopN(ctx, n); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("TopN(%d): expected ErrInvalidLimit, got %v", n, err)
		}
	}
}

func TestStore_MatchesSortedOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	r := rand.New(rand.NewPCG(1, 2))

	latest := map[string]int{}
	for i := 0; i < 2000; i++ {
		id := fmt.Sprintf("lead_%03d", r.IntN(300))
		score := r.IntN(101)
		latest[id] = score
		s.Upsert(ctx, id, id, score, "")
	}

	type row struct {
		id    string
		score int
	}
	want := make([]row, 0, len(latest))
	for id, sc := range latest {
		want = append(want, row{id, sc})
	}
	sort.Slice(want, func(i, j int) bool {
		if want[i].score != want[j].score {
			return want[i].score > want[j].score
		}
		return want[i].id < want[j].id
	})

	got, err := s.TopN(ctx, len(want)+5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].LeadID != want[i].id || got[i].Score != want[i].score {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if nsize(s.root) != len(want) {
		t.Fatalf("treap size %d, want %d", nsize(s.root), len(want))
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := fmt.Sprintf("lead_%d_%d", g, i%50)
				s.Upsert(ctx, id, "", i%101, "")
				_, _ = s.TopN(ctx, 5)
				_, _ = s.Rank(ctx, id)
			}
		}(g)
	}
	wg.Wait()

	if n := s.Count(ctx); n != 400 {
		t.Errorf("expected 400 leads, got %d", n)
	}
}
