package application

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
	"github.com/tollgate-network/tollgate-daemon/pkg/subkey"
)

// PaywallService is the registry of paywall configurations plus the deposit
// address queries derived from them. Ownership denials on update and delete
// are deliberately silent no-ops so ids are not leaked to non-owners; they
// are still logged internally.
type PaywallService interface {
	// CreatePaywall validates and persists the paywall, returning its id.
	CreatePaywall(ctx context.Context, paywall *domain.Paywall) (uint64, error)
	// GetPaywall is a free read of the config by id.
	GetPaywall(ctx context.Context, id uint64) (*domain.Paywall, error)
	// FetchPaywall is the enforcement-script read path: same as GetPaywall
	// but bumps the informational usage counter.
	FetchPaywall(ctx context.Context, id uint64) (*domain.Paywall, error)
	// ListPaywalls returns the caller's paywalls in creation order.
	ListPaywalls(ctx context.Context, owner domain.Identity) ([]domain.Paywall, error)
	// UpdatePaywall merges the provided fields over the stored config.
	// Silent no-op if the caller does not own the paywall.
	UpdatePaywall(
		ctx context.Context, caller domain.Identity, id uint64,
		update domain.PaywallUpdate,
	) error
	// DeletePaywall removes the config and cascade-invalidates its access
	// records. Silent no-op if the caller does not own the paywall.
	DeletePaywall(ctx context.Context, caller domain.Identity, id uint64) error
	// DepositAddress returns the caller's isolated one-time deposit slot for
	// the paywall. Fails for unknown or deleted ids.
	DepositAddress(
		ctx context.Context, identity domain.Identity, paywallID uint64,
	) (ports.Account, error)
	// WalletAddress returns the caller's shared wallet deposit slot.
	WalletAddress(ctx context.Context, identity domain.Identity) (ports.Account, error)
}

type paywallService struct {
	paywallRepository domain.PaywallRepository
	accessRepository  domain.AccessRepository
	vaultRepository   domain.VaultRepository
	ownerAddress      string
}

func NewPaywallService(
	paywallRepository domain.PaywallRepository,
	accessRepository domain.AccessRepository,
	vaultRepository domain.VaultRepository,
	ownerAddress string,
) PaywallService {
	return &paywallService{
		paywallRepository: paywallRepository,
		accessRepository:  accessRepository,
		vaultRepository:   vaultRepository,
		ownerAddress:      ownerAddress,
	}
}

func (s *paywallService) CreatePaywall(
	ctx context.Context, paywall *domain.Paywall,
) (uint64, error) {
	// NewPaywall validates on construction, but configs can also arrive
	// deserialized; never persist without the gate.
	if err := domain.ValidateDestinations(paywall.Destinations); err != nil {
		return 0, err
	}

	id, err := s.paywallRepository.AddPaywall(ctx, paywall)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"paywall": id,
		"owner":   paywall.Owner,
	}).Info("paywall created")
	return id, nil
}

func (s *paywallService) GetPaywall(
	ctx context.Context, id uint64,
) (*domain.Paywall, error) {
	return s.paywallRepository.GetPaywall(ctx, id)
}

func (s *paywallService) FetchPaywall(
	ctx context.Context, id uint64,
) (*domain.Paywall, error) {
	var fetched *domain.Paywall
	if err := s.paywallRepository.UpdatePaywall(
		ctx, id, func(p *domain.Paywall) (*domain.Paywall, error) {
			p.UsageCount++
			fetched = p
			return p, nil
		},
	); err != nil {
		return nil, err
	}
	return fetched, nil
}

func (s *paywallService) ListPaywalls(
	ctx context.Context, owner domain.Identity,
) ([]domain.Paywall, error) {
	return s.paywallRepository.GetPaywallsForOwner(ctx, owner)
}

func (s *paywallService) UpdatePaywall(
	ctx context.Context, caller domain.Identity, id uint64,
	update domain.PaywallUpdate,
) error {
	owned, err := s.ownedBy(ctx, caller, id)
	if err != nil || !owned {
		return err
	}

	return s.paywallRepository.UpdatePaywall(
		ctx, id, func(p *domain.Paywall) (*domain.Paywall, error) {
			if err := p.Merge(update); err != nil {
				return nil, err
			}
			return p, nil
		},
	)
}

func (s *paywallService) DeletePaywall(
	ctx context.Context, caller domain.Identity, id uint64,
) error {
	owned, err := s.ownedBy(ctx, caller, id)
	if err != nil || !owned {
		return err
	}

	if err := s.paywallRepository.DeletePaywall(ctx, id); err != nil {
		return err
	}
	// cascade: a deleted paywall must not keep answering access checks.
	if err := s.accessRepository.DeleteAccessRecordsForPaywall(ctx, id); err != nil {
		return err
	}

	log.WithField("paywall", id).Info("paywall deleted")
	return nil
}

func (s *paywallService) DepositAddress(
	ctx context.Context, identity domain.Identity, paywallID uint64,
) (ports.Account, error) {
	// deleted or unknown paywalls must not hand out deposit slots.
	if _, err := s.paywallRepository.GetPaywall(ctx, paywallID); err != nil {
		return ports.Account{}, err
	}
	return s.deriveAccount(ctx, subkey.PaywallPurpose(paywallID), identity)
}

func (s *paywallService) WalletAddress(
	ctx context.Context, identity domain.Identity,
) (ports.Account, error) {
	return s.deriveAccount(ctx, subkey.WalletPurpose(), identity)
}

func (s *paywallService) deriveAccount(
	ctx context.Context, purpose string, identity domain.Identity,
) (ports.Account, error) {
	vault, err := s.vaultRepository.GetOrCreateVault(ctx)
	if err != nil {
		return ports.Account{}, err
	}
	sub := subkey.Derive(vault.Salt, purpose, identity.Bytes())
	return ports.Account{Owner: s.ownerAddress, Subaccount: sub[:]}, nil
}

// ownedBy resolves the silent-denial policy: false with a nil error means
// deny without signaling anything to the caller.
func (s *paywallService) ownedBy(
	ctx context.Context, caller domain.Identity, id uint64,
) (bool, error) {
	paywall, err := s.paywallRepository.GetPaywall(ctx, id)
	if err != nil {
		if err == domain.ErrPaywallNotFound {
			return false, nil
		}
		return false, err
	}
	if paywall.Owner != caller {
		log.WithFields(log.Fields{
			"paywall": id,
			"caller":  caller,
		}).Warn("denied mutation by non-owner")
		return false, nil
	}
	return true, nil
}
