package domain

import "context"

// PaywallRepository is the abstraction for any kind of database intended to
// persist Paywalls.
type PaywallRepository interface {
	// AddPaywall persists the paywall under a freshly allocated monotonic id
	// and returns it. The id sequence survives restarts.
	AddPaywall(ctx context.Context, paywall *Paywall) (uint64, error)
	// GetPaywall returns the paywall with the given id, or ErrPaywallNotFound.
	GetPaywall(ctx context.Context, id uint64) (*Paywall, error)
	// GetPaywallsForOwner returns the owner's paywalls in creation order.
	GetPaywallsForOwner(ctx context.Context, owner Identity) ([]Paywall, error)
	// UpdatePaywall commits changes to a paywall in a read-modify-write
	// consistent way: concurrent updates to the same id never lose writes.
	UpdatePaywall(
		ctx context.Context,
		id uint64,
		updateFn func(p *Paywall) (*Paywall, error),
	) error
	// DeletePaywall removes the paywall, or returns ErrPaywallNotFound.
	DeletePaywall(ctx context.Context, id uint64) error
}
