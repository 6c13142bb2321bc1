package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

type paywallRepositoryImpl struct {
	store *badgerhold.Store
	// serializes read-modify-write cycles so interleaved updates to the same
	// id cannot lose writes.
	mtx sync.Mutex
}

// NewPaywallRepositoryImpl initializes a badger implementation of the
// domain.PaywallRepository.
func NewPaywallRepositoryImpl(store *badgerhold.Store) domain.PaywallRepository {
	return &paywallRepositoryImpl{store: store}
}

func (r *paywallRepositoryImpl) AddPaywall(
	ctx context.Context, paywall *domain.Paywall,
) (uint64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	// the sequence allocates the monotonic id and badgerhold writes it back
	// into the tagged key field.
	if err := r.store.Insert(badgerhold.NextSequence(), paywall); err != nil {
		return 0, err
	}
	return paywall.ID, nil
}

func (r *paywallRepositoryImpl) GetPaywall(
	ctx context.Context, id uint64,
) (*domain.Paywall, error) {
	var paywall domain.Paywall
	if err := r.store.Get(id, &paywall); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrPaywallNotFound
		}
		return nil, err
	}
	return &paywall, nil
}

func (r *paywallRepositoryImpl) GetPaywallsForOwner(
	ctx context.Context, owner domain.Identity,
) ([]domain.Paywall, error) {
	var paywalls []domain.Paywall
	query := badgerhold.Where("Owner").Eq(owner).SortBy("ID")
	if err := r.store.Find(&paywalls, query); err != nil {
		return nil, err
	}
	return paywalls, nil
}

func (r *paywallRepositoryImpl) UpdatePaywall(
	ctx context.Context,
	id uint64,
	updateFn func(p *domain.Paywall) (*domain.Paywall, error),
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var paywall domain.Paywall
	if err := r.store.Get(id, &paywall); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrPaywallNotFound
		}
		return err
	}

	updated, err := updateFn(&paywall)
	if err != nil {
		return err
	}

	return r.store.Update(id, updated)
}

func (r *paywallRepositoryImpl) DeletePaywall(
	ctx context.Context, id uint64,
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.store.Delete(id, domain.Paywall{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrPaywallNotFound
		}
		return err
	}
	return nil
}
