package dbbadger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tollgate-network/tollgate-daemon/pkg/subkey"
)

func TestGetOrCreateVaultIsLazyAndStable(t *testing.T) {
	repo := newTestRepoManager(t).VaultRepository()
	ctx := context.Background()

	vault, err := repo.GetOrCreateVault(ctx)
	require.NoError(t, err)
	require.Len(t, vault.Salt, subkey.Size)

	again, err := repo.GetOrCreateVault(ctx)
	require.NoError(t, err)
	require.Equal(t, vault.Salt, again.Salt)
}

func TestVaultSaltSurvivesReopen(t *testing.T) {
	dbDir := t.TempDir()

	manager, err := NewRepoManager(dbDir, nil)
	require.NoError(t, err)

	vault, err := manager.VaultRepository().GetOrCreateVault(context.Background())
	require.NoError(t, err)
	require.NoError(t, manager.Close())

	// the salt must be identical after a restart or every derived deposit
	// slot silently shifts.
	reopened, err := NewRepoManager(dbDir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	restored, err := reopened.VaultRepository().GetOrCreateVault(context.Background())
	require.NoError(t, err)
	require.Equal(t, vault.Salt, restored.Salt)
}

func TestGetOrCreateVaultConcurrent(t *testing.T) {
	repo := newTestRepoManager(t).VaultRepository()
	ctx := context.Background()

	salts := make([][]byte, 10)
	errs := make([]error, len(salts))
	var wg sync.WaitGroup
	for i := 0; i < len(salts); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vault, err := repo.GetOrCreateVault(ctx)
			if err != nil {
				errs[i] = err
				return
			}
			salts[i] = vault.Salt
		}(i)
	}
	wg.Wait()

	for i, salt := range salts {
		require.NoError(t, errs[i])
		require.Equal(t, salts[0], salt)
	}
}
