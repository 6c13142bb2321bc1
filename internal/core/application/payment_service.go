package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
	"github.com/tollgate-network/tollgate-daemon/pkg/keylock"
	"github.com/tollgate-network/tollgate-daemon/pkg/paysplit"
	"github.com/tollgate-network/tollgate-daemon/pkg/subkey"
)

// PaymentService orchestrates payment attempts: fee extraction, per
// destination settlement and the access grant. The two entry points differ
// only in which deposit slot funds the attempt; the staged flow is shared so
// the two paths cannot drift apart.
type PaymentService interface {
	// PayFromDeposit pays for the paywall from the payer's one-time deposit
	// slot for that paywall.
	PayFromDeposit(
		ctx context.Context, payer domain.Identity, paywallID uint64,
	) (*PaymentReceipt, error)
	// PayFromWallet pays for the paywall from the payer's shared wallet slot.
	PayFromWallet(
		ctx context.Context, payer domain.Identity, paywallID uint64,
	) (*PaymentReceipt, error)
}

type paymentService struct {
	paywallRepository domain.PaywallRepository
	accessRepository  domain.AccessRepository
	vaultRepository   domain.VaultRepository
	ledgerSvc         ports.LedgerService
	converterSvc      ports.CreditConverter

	locker       *keylock.Locker
	ownerAddress string
	feeCollector string
	minFee       uint64
	ledgerFee    uint64
}

// NewPaymentService returns a PaymentService settling on the given ledger.
// ownerAddress is the daemon's own ledger identity holding every deposit
// subaccount, feeCollector the fixed protocol fee address, ledgerFee the
// ledger's per-transfer fee.
func NewPaymentService(
	paywallRepository domain.PaywallRepository,
	accessRepository domain.AccessRepository,
	vaultRepository domain.VaultRepository,
	ledgerSvc ports.LedgerService,
	converterSvc ports.CreditConverter,
	ownerAddress, feeCollector string,
	minFee, ledgerFee uint64,
) PaymentService {
	return &paymentService{
		paywallRepository: paywallRepository,
		accessRepository:  accessRepository,
		vaultRepository:   vaultRepository,
		ledgerSvc:         ledgerSvc,
		converterSvc:      converterSvc,
		locker:            keylock.New(),
		ownerAddress:      ownerAddress,
		feeCollector:      feeCollector,
		minFee:            minFee,
		ledgerFee:         ledgerFee,
	}
}

func (p *paymentService) PayFromDeposit(
	ctx context.Context, payer domain.Identity, paywallID uint64,
) (*PaymentReceipt, error) {
	return p.pay(ctx, payer, paywallID, subkey.PaywallPurpose(paywallID))
}

func (p *paymentService) PayFromWallet(
	ctx context.Context, payer domain.Identity, paywallID uint64,
) (*PaymentReceipt, error) {
	return p.pay(ctx, payer, paywallID, subkey.WalletPurpose())
}

// pay runs the staged payment flow. Stages are strictly ordered and never
// retried; on the first failing destination leg, legs already settled stay
// settled (the ledger has no multi-party atomic commit).
func (p *paymentService) pay(
	ctx context.Context, payer domain.Identity, paywallID uint64, purpose string,
) (*PaymentReceipt, error) {
	attemptID := uuid.New().String()
	attemptLog := log.WithFields(log.Fields{
		"attempt": attemptID,
		"paywall": paywallID,
		"payer":   payer,
		"purpose": purpose,
	})

	paywall, err := p.paywallRepository.GetPaywall(ctx, paywallID)
	if err != nil {
		paymentsCounter.WithLabelValues(outcomeConfigError).Inc()
		return nil, err
	}

	// the slot is held for the whole balance-check/transfer window so two
	// concurrent attempts cannot both spend the same observed balance.
	lockKey := string(payer) + "/" + purpose
	p.locker.Lock(lockKey)
	defer p.locker.Unlock(lockKey)

	vault, err := p.vaultRepository.GetOrCreateVault(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vault: %w", err)
	}
	sub := subkey.Derive(vault.Salt, purpose, payer.Bytes())
	source := ports.Account{Owner: p.ownerAddress, Subaccount: sub[:]}

	balance, err := p.ledgerSvc.BalanceOf(ctx, source)
	if err != nil {
		paymentsCounter.WithLabelValues(outcomeLedgerError).Inc()
		return nil, fmt.Errorf("querying balance: %w", err)
	}

	fee := paysplit.Fee(paywall.Price, p.minFee)
	if paywall.Price < fee {
		paymentsCounter.WithLabelValues(outcomeConfigError).Inc()
		return nil, ErrPriceBelowFee
	}

	// one fee-leg transfer plus one transfer per destination.
	required := paywall.Price + p.ledgerFee*uint64(len(paywall.Destinations)+1)
	if balance < required {
		paymentsCounter.WithLabelValues(outcomeInsufficientBalance).Inc()
		return nil, &InsufficientBalanceError{Required: required, Available: balance}
	}

	if _, err := p.ledgerSvc.Transfer(
		ctx, sub[:], ports.Account{Owner: p.feeCollector}, fee, p.ledgerFee, 0,
	); err != nil {
		paymentsCounter.WithLabelValues(outcomeLedgerError).Inc()
		attemptLog.WithError(err).Error("fee transfer failed")
		return nil, fmt.Errorf("fee transfer: %w", err)
	}

	net := paywall.Price - fee
	percentages := make([]uint32, len(paywall.Destinations))
	for i, d := range paywall.Destinations {
		percentages[i] = d.Percentage
	}
	amounts := paysplit.Split(net, percentages)

	settlements := make([]Settlement, 0, len(paywall.Destinations))
	for i, dest := range paywall.Destinations {
		settlement, err := p.settle(ctx, amounts[i], sub[:], dest)
		if err != nil {
			// the fee leg and the legs before this one stay settled.
			var incomplete *ConversionIncompleteError
			if errors.As(err, &incomplete) {
				paymentsCounter.WithLabelValues(outcomeConversionIncomplete).Inc()
			} else {
				paymentsCounter.WithLabelValues(outcomeLedgerError).Inc()
			}
			attemptLog.WithError(err).WithField("destination", i).
				Error("settlement failed, earlier legs remain settled")
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	expiresAt := time.Now().Add(paywall.SessionDuration)
	if err := p.accessRepository.UpsertAccessRecord(ctx, domain.AccessRecord{
		Identity:  payer,
		PaywallID: paywallID,
		ExpiresAt: expiresAt.UnixNano(),
	}); err != nil {
		attemptLog.WithError(err).Error("payment settled but access grant failed")
		return nil, fmt.Errorf("writing access record: %w", err)
	}

	paymentsCounter.WithLabelValues(outcomeOk).Inc()
	attemptLog.WithFields(log.Fields{
		"fee": fee,
		"net": net,
	}).Info("payment settled")

	return &PaymentReceipt{
		AttemptID:   attemptID,
		PaywallID:   paywallID,
		Payer:       payer,
		Fee:         fee,
		Net:         net,
		Settlements: settlements,
		ExpiresAt:   expiresAt,
	}, nil
}

// settle routes one destination leg: direct legacy transfer, direct identity
// transfer, or the two-step credit conversion. The kind switch is exhaustive
// on purpose so a new variant cannot silently fall through.
func (p *paymentService) settle(
	ctx context.Context, amount uint64, fromSubaccount []byte,
	dest domain.Destination,
) (Settlement, error) {
	switch dest.Kind {
	case domain.DestinationToLegacyAddress:
		block, err := p.ledgerSvc.TransferLegacy(
			ctx, fromSubaccount, dest.LegacyAddress, amount, 0,
		)
		if err != nil {
			return Settlement{}, err
		}
		settlementsCounter.WithLabelValues(settlementLegacy).Inc()
		return Settlement{Destination: dest, Amount: amount, BlockIndex: block}, nil

	case domain.DestinationToIdentity:
		if !dest.ConvertToCredit {
			block, err := p.ledgerSvc.Transfer(
				ctx, fromSubaccount,
				ports.Account{Owner: string(dest.Identity)},
				amount, p.ledgerFee, 0,
			)
			if err != nil {
				return Settlement{}, err
			}
			settlementsCounter.WithLabelValues(settlementDirect).Inc()
			return Settlement{Destination: dest, Amount: amount, BlockIndex: block}, nil
		}

		memo := ports.MemoMint
		if dest.Identity.IsService() {
			memo = ports.MemoTopUp
		}
		convSub := subkey.ConversionSubaccount(dest.Identity.Bytes())
		block, err := p.ledgerSvc.Transfer(
			ctx, fromSubaccount,
			ports.Account{
				Owner:      p.converterSvc.AccountOwner(),
				Subaccount: convSub[:],
			},
			amount, p.ledgerFee, memo,
		)
		if err != nil {
			return Settlement{}, err
		}

		credits, err := p.converterSvc.NotifyConversion(ctx, block)
		if err != nil {
			// funds already left the source: terminal partial state.
			return Settlement{}, &ConversionIncompleteError{BlockIndex: block, Err: err}
		}
		settlementsCounter.WithLabelValues(settlementConverted).Inc()
		return Settlement{
			Destination: dest,
			Amount:      amount,
			BlockIndex:  block,
			Converted:   true,
			Credits:     credits,
		}, nil

	default:
		return Settlement{}, domain.ErrDestinationUnknownKind
	}
}
