package domain

import "github.com/tollgate-network/tollgate-daemon/pkg/subkey"

// Vault holds the process-wide derivation salt. It is generated lazily on
// first use and must be persisted before any derived address is revealed:
// losing it across a restart would silently orphan every open deposit slot.
type Vault struct {
	Salt []byte
}

// NewVault generates a fresh salt from a secure randomness source.
func NewVault() (*Vault, error) {
	salt, err := subkey.NewSalt()
	if err != nil {
		return nil, err
	}
	return &Vault{Salt: salt}, nil
}
