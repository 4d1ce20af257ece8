// Package ranking keeps the lead pipeline ranking: the latest score of every
// lead scored by id, ordered best first.
package ranking

import (
	"context"
	"sync"

	"github.com/okian/revintel/internal/domain/types"
	"github.com/okian/revintel/pkg/metrics"
)

type meta struct {
	score   int
	company string
	tier    string
}

// Store is an in-memory treap-backed ranking. Equal scores share a rank and
// the next distinct score takes the following rank.
type Store struct {
	mu   sync.RWMutex
	root *node
	byID map[string]meta
}

// NewStore returns an empty ranking.
func NewStore() *Store {
	return &Store{byID: make(map[string]meta)}
}

// Upsert records the latest score of a lead, replacing any earlier one.
func (s *Store) Upsert(_ context.Context, leadID, company string, score int, tier string) {
	s.mu.Lock()
	if old, ok := s.byID[leadID]; ok {
		s.root = remove(s.root, leadID, old.score)
	}
	s.byID[leadID] = meta{score: score, company: company, tier: tier}
	s.root = insert(s.root, leadID, score)
	n := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateRankedLeads(n)
}

// Rank returns the ranking row of a lead, ErrNotFound if it was never scored.
func (s *Store) Rank(_ context.Context, leadID string) (types.RankedLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[leadID]; !ok {
		metrics.RecordErrorByComponent("ranking", "not_found")
		return types.RankedLead{}, ErrNotFound
	}

	var (
		out   types.RankedLead
		rank  int
		prev  = -1
		found bool
	)
	walk(s.root, func(n *node) bool {
		if n.score != prev {
			rank++
			prev = n.score
		}
		if n.id == leadID {
			out = s.entry(n, rank)
			found = true
			return false
		}
		return true
	})
	if !found {
		return types.RankedLead{}, ErrNotFound
	}
	return out, nil
}

// TopN returns up to n leads in rank order.
func (s *Store) TopN(_ context.Context, n int) ([]types.RankedLead, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("ranking", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.RankedLead, 0, min(n, len(s.byID)))
	rank, prev := 0, -1
	walk(s.root, func(nd *node) bool {
		if nd.score != prev {
			rank++
			prev = nd.score
		}
		out = append(out, s.entry(nd, rank))
		return len(out) < n
	})
	return out, nil
}

// Count returns the number of ranked leads.
func (s *Store) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *Store) entry(n *node, rank int) types.RankedLead {
	m := s.byID[n.id]
	return types.RankedLead{Rank: rank, LeadID: n.id, Company: m.company, Score: m.score, Tier: m.tier}
}
