package domain

import "context"

// VaultRepository persists the derivation salt.
type VaultRepository interface {
	// GetOrCreateVault returns the stored vault, lazily generating and
	// persisting it on first use. The salt must be durable before this
	// returns, or every derived address changes after a restart.
	GetOrCreateVault(ctx context.Context) (*Vault, error)
}
