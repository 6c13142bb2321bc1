package domain

import "time"

// Paywall is the durable configuration of one gated resource: its price, the
// session it buys, and how the net amount is distributed. A Paywall is never
// persisted without its destinations validating first, so every stored
// config upholds the zero-loss split invariant.
type Paywall struct {
	ID    uint64 `badgerhold:"key"`
	Owner Identity
	// Price in the smallest asset unit.
	Price uint64
	// SessionDuration is how long one successful payment grants access for.
	SessionDuration time.Duration
	// Destinations in declared order. The order decides which destination
	// absorbs the split rounding remainder and must never be reshuffled.
	Destinations []Destination
	Title        string
	Description  string
	// ResourceURL locates the protected resource, opaque to the daemon.
	ResourceURL string
	// UsageCount tracks config fetches by the enforcement script.
	// Informational only.
	UsageCount uint64
	CreatedAt  time.Time
}

// NewPaywall validates and assembles a paywall ready to be persisted. The ID
// is allocated by the repository on insert.
func NewPaywall(
	owner Identity, price uint64, sessionDuration time.Duration,
	destinations []Destination, title, description, resourceURL string,
) (*Paywall, error) {
	if owner == "" {
		return nil, ErrPaywallInvalidOwner
	}
	if err := ValidateDestinations(destinations); err != nil {
		return nil, err
	}

	return &Paywall{
		Owner:           owner,
		Price:           price,
		SessionDuration: sessionDuration,
		Destinations:    destinations,
		Title:           title,
		Description:     description,
		ResourceURL:     resourceURL,
		CreatedAt:       time.Now(),
	}, nil
}

// PaywallUpdate carries a partial-field mutation: nil pointers (and a nil
// destination list) leave the stored value untouched.
type PaywallUpdate struct {
	Price           *uint64
	SessionDuration *time.Duration
	Destinations    []Destination
	Title           *string
	Description     *string
	ResourceURL     *string
}

// Merge applies the provided fields over the paywall, re-validating the
// destinations if they are among them. On error the paywall is unchanged.
func (p *Paywall) Merge(update PaywallUpdate) error {
	if update.Destinations != nil {
		if err := ValidateDestinations(update.Destinations); err != nil {
			return err
		}
		p.Destinations = update.Destinations
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.SessionDuration != nil {
		p.SessionDuration = *update.SessionDuration
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.ResourceURL != nil {
		p.ResourceURL = *update.ResourceURL
	}

	return nil
}
