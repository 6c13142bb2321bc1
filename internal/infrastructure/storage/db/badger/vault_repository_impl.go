package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

const vaultKey = "vault"

type vaultRepositoryImpl struct {
	store *badgerhold.Store
	mtx   sync.Mutex
}

// NewVaultRepositoryImpl initializes a badger implementation of the
// domain.VaultRepository.
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return &vaultRepositoryImpl{store: store}
}

// GetOrCreateVault generates the salt on first use and persists it before
// returning, so no derived address is ever revealed for a salt that would
// not survive a restart.
func (r *vaultRepositoryImpl) GetOrCreateVault(
	ctx context.Context,
) (*domain.Vault, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var vault domain.Vault
	err := r.store.Get(vaultKey, &vault)
	if err == nil {
		return &vault, nil
	}
	if err != badgerhold.ErrNotFound {
		return nil, err
	}

	fresh, err := domain.NewVault()
	if err != nil {
		return nil, err
	}
	if err := r.store.Insert(vaultKey, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}
