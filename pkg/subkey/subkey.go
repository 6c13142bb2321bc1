// Package subkey derives the 32-byte subaccounts that isolate every
// (purpose, identity) pair into its own funding slot on the ledger. A
// subaccount is only recoverable by whoever knows the daemon's secret salt,
// which makes it an unforgeable correlation between a user and a deposit
// slot.
package subkey

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"strconv"
)

// Size is the length in bytes of every derived subaccount.
const Size = 32

const (
	walletPurpose        = "wallet"
	paywallPurposePrefix = "paywall:"
)

// NewSalt returns a fresh 32-byte secret from the system's CSPRNG. The salt
// must be persisted before any subaccount derived from it is handed out,
// otherwise a restart silently orphans every open deposit slot.
func NewSalt() ([]byte, error) {
	salt := make([]byte, Size)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// WalletPurpose is the derivation purpose of a user's shared wallet slot.
func WalletPurpose() string {
	return walletPurpose
}

// PaywallPurpose is the derivation purpose of a user's one-time deposit slot
// for the given paywall.
func PaywallPurpose(paywallID uint64) string {
	return paywallPurposePrefix + strconv.FormatUint(paywallID, 10)
}

// Derive computes the subaccount for (salt, purpose, identity) as
// HMAC-SHA256(salt, purpose || 0x00 || identity). Deterministic and
// side-effect free. The zero byte separates purpose from identity so no two
// purposes can collide on the same payload.
func Derive(salt []byte, purpose string, identity []byte) [Size]byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(purpose))
	mac.Write([]byte{0x00})
	mac.Write(identity)

	var sub [Size]byte
	copy(sub[:], mac.Sum(nil))
	return sub
}

// ConversionSubaccount maps a destination identity to its subaccount on the
// credit converter's ledger account: the identity bytes, length-prefixed and
// right-padded with zeros. No salt is involved so the converter can
// recompute the same subaccount on its side.
func ConversionSubaccount(identity []byte) [Size]byte {
	var sub [Size]byte
	n := len(identity)
	if n > Size-1 {
		n = Size - 1
	}
	sub[0] = byte(n)
	copy(sub[1:], identity[:n])
	return sub
}
