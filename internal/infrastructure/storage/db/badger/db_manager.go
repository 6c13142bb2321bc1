package dbbadger

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

// RepoManager opens the badger store on disk and hands out the repository
// implementations backed by it. Everything the daemon must not lose across a
// restart lives here: paywall configs, access records, the id sequence and
// the derivation salt.
type RepoManager interface {
	PaywallRepository() domain.PaywallRepository
	AccessRepository() domain.AccessRepository
	VaultRepository() domain.VaultRepository
	Close() error
}

type repoManager struct {
	store *badgerhold.Store

	paywallRepository domain.PaywallRepository
	accessRepository  domain.AccessRepository
	vaultRepository   domain.VaultRepository
}

// NewRepoManager opens (or creates if not exists) the badger store in dbDir.
func NewRepoManager(dbDir string, logger badger.Logger) (RepoManager, error) {
	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, err
	}

	return &repoManager{
		store:             store,
		paywallRepository: NewPaywallRepositoryImpl(store),
		accessRepository:  NewAccessRepositoryImpl(store),
		vaultRepository:   NewVaultRepositoryImpl(store),
	}, nil
}

func (r *repoManager) PaywallRepository() domain.PaywallRepository {
	return r.paywallRepository
}

func (r *repoManager) AccessRepository() domain.AccessRepository {
	return r.accessRepository
}

func (r *repoManager) VaultRepository() domain.VaultRepository {
	return r.vaultRepository
}

func (r *repoManager) Close() error {
	return r.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.Compression = options.ZSTD

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
