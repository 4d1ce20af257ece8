// Package repository provides read access to the CRM dataset.
package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/metrics"
)

// Store is the CRM lookup surface used by the application service.
type Store interface {
	// GetAccount returns the account with id, ErrNotFound if unknown.
	GetAccount(ctx context.Context, id string) (model.Account, error)
	// GetLead returns the lead with id, ErrNotFound if unknown.
	GetLead(ctx context.Context, id string) (model.Lead, error)
	// ListAccounts returns every account ordered by id.
	ListAccounts(ctx context.Context) ([]model.Account, error)
	// ListLeads returns every lead ordered by id.
	ListLeads(ctx context.Context) ([]model.Lead, error)
	// AccountsByStatus returns the accounts in a lifecycle state ordered by id.
	AccountsByStatus(ctx context.Context, status model.AccountStatus) ([]model.Account, error)
}

// MemoryStore is a read-mostly in-memory Store. Returned values are copies.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
	leads    map[string]model.Lead
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store loaded with the demo CRM dataset unless
// overridden by options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	WithAccounts(SeedAccounts()...)(s)
	WithLeads(SeedLeads()...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) GetAccount(_ context.Context, id string) (model.Account, error) {
	s.mu.RLock()
	acc, ok := s.accounts[id]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordRepositoryLookup("account", "not_found")
		return model.Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	metrics.RecordRepositoryLookup("account", "hit")
	return acc.Clone(), nil
}

func (s *MemoryStore) GetLead(_ context.Context, id string) (model.Lead, error) {
	s.mu.RLock()
	lead, ok := s.leads[id]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordRepositoryLookup("lead", "not_found")
		return model.Lead{}, fmt.Errorf("lead %q: %w", id, ErrNotFound)
	}
	metrics.RecordRepositoryLookup("lead", "hit")
	return lead, nil
}

func (s *MemoryStore) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.filterAccounts(ctx, func(model.Account) bool { return true })
}

func (s *MemoryStore) AccountsByStatus(ctx context.Context, status model.AccountStatus) ([]model.Account, error) {
	return s.filterAccounts(ctx, func(a model.Account) bool { return a.Status == status })
}

func (s *MemoryStore) ListLeads(ctx context.Context) ([]model.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]model.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, l)
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b model.Lead) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) filterAccounts(ctx context.Context, keep func(model.Account) bool) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b model.Account) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
