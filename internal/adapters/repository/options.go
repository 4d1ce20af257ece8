package repository

import "github.com/okian/revintel/internal/domain/model"

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithAccounts replaces the seeded accounts.
func WithAccounts(accounts ...model.Account) Option {
	return func(s *MemoryStore) {
		s.accounts = index(accounts, func(a model.Account) string { return a.ID })
	}
}

// WithLeads replaces the seeded leads.
func WithLeads(leads ...model.Lead) Option {
	return func(s *MemoryStore) {
		s.leads = index(leads, func(l model.Lead) string { return l.ID })
	}
}

func index[T any](items []T, key func(T) string) map[string]T {
	out := make(map[string]T, len(items))
	for _, it := range items {
		out[key(it)] = it
	}
	return out
}
