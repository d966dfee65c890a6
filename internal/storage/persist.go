package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/derive"
	"github.com/Veraticus/tally/internal/model"
)

// Persister loads and saves the ledger through a BlobStore. Failures are
// reported to the notifier and logged here; returned errors are informational
// and must not be reported again.
type Persister struct {
	store    BlobStore
	notifier common.Notifier
	now      func() time.Time
	key      string
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithKey overrides the blob key.
func WithKey(key string) PersisterOption {
	return func(p *Persister) {
		if key != "" {
			p.key = key
		}
	}
}

// WithNotifier sets the user-visible error channel.
func WithNotifier(n common.Notifier) PersisterOption {
	return func(p *Persister) {
		if n != nil {
			p.notifier = n
		}
	}
}

// WithClock sets the clock used to rebuild the monthly cache after a load.
func WithClock(now func() time.Time) PersisterOption {
	return func(p *Persister) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPersister creates a persister over store.
func NewPersister(store BlobStore, opts ...PersisterOption) *Persister {
	p := &Persister{
		store:    store,
		key:      DefaultKey,
		notifier: common.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the blob key in use.
func (p *Persister) Key() string {
	return p.key
}

// Load merges the stored ledger into s. A missing blob leaves s as it is and
// is not an error. An unreadable or malformed blob leaves s untouched and is
// reported.
func (p *Persister) Load(ctx context.Context, s *model.State) error {
	data, err := p.store.Get(ctx, p.key)
	if errors.Is(err, common.ErrNotFound) {
		common.LogDebug("No saved ledger, starting fresh", common.Fields{"key": p.key})
		s.MonthlyExpenses = derive.MonthlyExpenses(s.Transactions, p.now())
		return nil
	}
	if err == nil {
		err = Decode(data, s)
	}
	if err != nil {
		return common.Report(p.notifier, "loading data", common.Persistence("Error loading data", err))
	}

	s.MonthlyExpenses = derive.MonthlyExpenses(s.Transactions, p.now())
	common.LogDebug("Loaded ledger", common.Fields{"key": p.key, "transactions": len(s.Transactions)})
	return nil
}

// Save writes the full ledger. It never retries.
func (p *Persister) Save(ctx context.Context, s *model.State) error {
	data, err := Encode(s)
	if err == nil {
		err = p.store.Set(ctx, p.key, data)
	}
	if err != nil {
		return common.Report(p.notifier, "saving data",
			common.Persistence("Error saving data: changes may not survive a reload", err))
	}
	return nil
}
