package domain

import "errors"

var (
	// ErrPaywallNotFound is returned for ids never allocated or deleted.
	ErrPaywallNotFound = errors.New("paywall does not exist")
	// ErrPaywallInvalidDestinations ...
	ErrPaywallInvalidDestinations = errors.New("paywall must have between 1 and 3 destinations")
	// ErrPaywallInvalidPercentages ...
	ErrPaywallInvalidPercentages = errors.New("destination percentages must sum to exactly 100")
	// ErrPaywallInvalidOwner ...
	ErrPaywallInvalidOwner = errors.New("paywall owner must not be empty")
	// ErrDestinationMissingIdentity ...
	ErrDestinationMissingIdentity = errors.New("identity destination must have an identity")
	// ErrDestinationInvalidLegacyAddress ...
	ErrDestinationInvalidLegacyAddress = errors.New("legacy address must be 32 bytes hex encoded")
	// ErrDestinationLegacyConversion is returned when a legacy address
	// destination requests credit conversion, which only identities support.
	ErrDestinationLegacyConversion = errors.New("legacy address destination cannot convert to credit")
	// ErrDestinationInvalidPercentage ...
	ErrDestinationInvalidPercentage = errors.New("destination percentage must be between 0 and 100")
	// ErrDestinationUnknownKind ...
	ErrDestinationUnknownKind = errors.New("unknown destination kind")
	// ErrAccessNotFound is returned when no access record exists for an
	// (identity, paywall) pair.
	ErrAccessNotFound = errors.New("access record does not exist")
)
