package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

type accessRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAccessRepositoryImpl initializes a badger implementation of the
// domain.AccessRepository.
func NewAccessRepositoryImpl(store *badgerhold.Store) domain.AccessRepository {
	return &accessRepositoryImpl{store: store}
}

func (r *accessRepositoryImpl) UpsertAccessRecord(
	ctx context.Context, record domain.AccessRecord,
) error {
	key := domain.AccessKey(record.Identity, record.PaywallID)
	return r.store.Upsert(key, &record)
}

func (r *accessRepositoryImpl) GetAccessRecord(
	ctx context.Context, identity domain.Identity, paywallID uint64,
) (*domain.AccessRecord, error) {
	var record domain.AccessRecord
	key := domain.AccessKey(identity, paywallID)
	if err := r.store.Get(key, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccessNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *accessRepositoryImpl) DeleteAccessRecordsForPaywall(
	ctx context.Context, paywallID uint64,
) error {
	query := badgerhold.Where("PaywallID").Eq(paywallID)
	return r.store.DeleteMatching(&domain.AccessRecord{}, query)
}
