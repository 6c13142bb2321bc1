package domain

import (
	"fmt"
	"time"
)

// AccessRecord is a time-bounded access grant for one (identity, paywall)
// pair. It is written or overwritten only by a fully successful payment and
// expires by timestamp comparison, never by removal.
type AccessRecord struct {
	Identity  Identity
	PaywallID uint64
	// ExpiresAt in nanoseconds since epoch.
	ExpiresAt int64
}

// AccessKey is the storage key of the (identity, paywall) pair.
func AccessKey(identity Identity, paywallID uint64) string {
	return fmt.Sprintf("%d/%s", paywallID, identity)
}

// Active reports whether the grant is still open at the given instant. The
// comparison is strict: a record expiring exactly now no longer grants
// access.
func (r AccessRecord) Active(now time.Time) bool {
	return r.ExpiresAt > now.UnixNano()
}

// Expiry returns the grant's expiry as a time.
func (r AccessRecord) Expiry() time.Time {
	return time.Unix(0, r.ExpiresAt)
}
