package domain

import "context"

// AccessRepository is the abstraction for any kind of database intended to
// persist AccessRecords.
type AccessRepository interface {
	// UpsertAccessRecord writes or overwrites the record for its
	// (identity, paywall) pair.
	UpsertAccessRecord(ctx context.Context, record AccessRecord) error
	// GetAccessRecord returns the record for the pair, or ErrAccessNotFound.
	GetAccessRecord(
		ctx context.Context, identity Identity, paywallID uint64,
	) (*AccessRecord, error)
	// DeleteAccessRecordsForPaywall cascade-invalidates every record of a
	// deleted paywall.
	DeleteAccessRecordsForPaywall(ctx context.Context, paywallID uint64) error
}
