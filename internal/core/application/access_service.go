package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
	"golang.org/x/time/rate"
)

// AccessService answers the enforcement script's polling reads and accepts
// its best-effort suspicious-activity reports.
type AccessService interface {
	// HasAccess is true iff a grant exists and its expiry is strictly in the
	// future. Pure read, safe to poll.
	HasAccess(
		ctx context.Context, identity domain.Identity, paywallID uint64,
	) (bool, error)
	// AccessExpiry returns the grant's expiry if one exists, for client-side
	// scheduling of re-checks.
	AccessExpiry(
		ctx context.Context, identity domain.Identity, paywallID uint64,
	) (*time.Time, error)
	// LogSuspiciousActivity records a report from the enforcement script.
	// Best effort: reports beyond the rate limit are silently dropped.
	LogSuspiciousActivity(paywallID uint64, details string)
}

type accessService struct {
	accessRepository domain.AccessRepository
	limiter          *rate.Limiter
}

// NewAccessService returns an AccessService whose suspicious-activity sink
// accepts at most reportsPerSecond sustained reports (with a small burst).
func NewAccessService(
	accessRepository domain.AccessRepository, reportsPerSecond float64,
) AccessService {
	return &accessService{
		accessRepository: accessRepository,
		limiter:          rate.NewLimiter(rate.Limit(reportsPerSecond), 5),
	}
}

func (s *accessService) HasAccess(
	ctx context.Context, identity domain.Identity, paywallID uint64,
) (bool, error) {
	record, err := s.accessRepository.GetAccessRecord(ctx, identity, paywallID)
	if err != nil {
		if err == domain.ErrAccessNotFound {
			return false, nil
		}
		return false, err
	}
	return record.Active(time.Now()), nil
}

func (s *accessService) AccessExpiry(
	ctx context.Context, identity domain.Identity, paywallID uint64,
) (*time.Time, error) {
	record, err := s.accessRepository.GetAccessRecord(ctx, identity, paywallID)
	if err != nil {
		if err == domain.ErrAccessNotFound {
			return nil, nil
		}
		return nil, err
	}
	expiry := record.Expiry()
	return &expiry, nil
}

func (s *accessService) LogSuspiciousActivity(paywallID uint64, details string) {
	if !s.limiter.Allow() {
		return
	}
	suspiciousCounter.Inc()
	log.WithFields(log.Fields{
		"paywall": paywallID,
		"details": details,
	}).Warn("suspicious activity reported")
}
