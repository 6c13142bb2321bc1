package domain

import "encoding/hex"

// Identity is the opaque, externally verified identifier of a caller or a
// payment beneficiary. The daemon never authenticates identities itself, it
// only trusts the one attached to each inbound call.
type Identity string

// serviceIdentityPrefix marks identities that address a compute service
// rather than an end user. A conversion for a service identity tops up the
// service's credit; for anyone else it mints credit on their behalf.
const serviceIdentityPrefix = "svc:"

// IsService reports whether the identity is service-shaped.
func (i Identity) IsService() bool {
	return len(i) > len(serviceIdentityPrefix) &&
		i[:len(serviceIdentityPrefix)] == serviceIdentityPrefix
}

// Bytes returns the raw payload used in subaccount derivations.
func (i Identity) Bytes() []byte {
	return []byte(i)
}

// DestinationKind discriminates the two destination variants.
type DestinationKind int

const (
	// DestinationToIdentity pays an identity's default ledger account, or
	// converts the amount into compute credit for it.
	DestinationToIdentity DestinationKind = iota
	// DestinationToLegacyAddress pays a raw 32-byte ledger address directly.
	DestinationToLegacyAddress
)

// Destination is one leg of a split payment. Exactly one variant is active,
// selected by Kind; Validate enforces the variant's invariants. Legacy
// address destinations never support credit conversion.
type Destination struct {
	Kind            DestinationKind `json:"kind"`
	Identity        Identity        `json:"identity,omitempty"`
	ConvertToCredit bool            `json:"convertToCredit,omitempty"`
	// LegacyAddress is a 32-byte raw ledger address, hex encoded.
	LegacyAddress string `json:"legacyAddress,omitempty"`
	Percentage    uint32 `json:"percentage"`
}

// Validate checks the variant invariants of a single destination.
func (d Destination) Validate() error {
	if d.Percentage > 100 {
		return ErrDestinationInvalidPercentage
	}

	switch d.Kind {
	case DestinationToIdentity:
		if d.Identity == "" {
			return ErrDestinationMissingIdentity
		}
		return nil
	case DestinationToLegacyAddress:
		if d.ConvertToCredit {
			return ErrDestinationLegacyConversion
		}
		if raw, err := hex.DecodeString(d.LegacyAddress); err != nil || len(raw) != 32 {
			return ErrDestinationInvalidLegacyAddress
		}
		return nil
	default:
		return ErrDestinationUnknownKind
	}
}

// ValidateDestinations is the single gate protecting the zero-loss split
// invariant: it runs before a destination list is ever persisted.
func ValidateDestinations(destinations []Destination) error {
	if len(destinations) < 1 || len(destinations) > 3 {
		return ErrPaywallInvalidDestinations
	}

	var total uint32
	for _, d := range destinations {
		if err := d.Validate(); err != nil {
			return err
		}
		total += d.Percentage
	}
	if total != 100 {
		return ErrPaywallInvalidPercentages
	}

	return nil
}
