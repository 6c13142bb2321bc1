package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
)

// **** PaywallRepository ****

type mockPaywallRepository struct {
	mock.Mock
}

func (m *mockPaywallRepository) AddPaywall(
	ctx context.Context, paywall *domain.Paywall,
) (uint64, error) {
	args := m.Called(ctx, paywall)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockPaywallRepository) GetPaywall(
	ctx context.Context, id uint64,
) (*domain.Paywall, error) {
	args := m.Called(ctx, id)

	var res *domain.Paywall
	if a := args.Get(0); a != nil {
		res = a.(*domain.Paywall)
	}
	return res, args.Error(1)
}

func (m *mockPaywallRepository) GetPaywallsForOwner(
	ctx context.Context, owner domain.Identity,
) ([]domain.Paywall, error) {
	args := m.Called(ctx, owner)

	var res []domain.Paywall
	if a := args.Get(0); a != nil {
		res = a.([]domain.Paywall)
	}
	return res, args.Error(1)
}

func (m *mockPaywallRepository) UpdatePaywall(
	ctx context.Context, id uint64,
	updateFn func(p *domain.Paywall) (*domain.Paywall, error),
) error {
	args := m.Called(ctx, id, updateFn)
	return args.Error(0)
}

func (m *mockPaywallRepository) DeletePaywall(
	ctx context.Context, id uint64,
) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// **** AccessRepository ****

type mockAccessRepository struct {
	mock.Mock
}

func (m *mockAccessRepository) UpsertAccessRecord(
	ctx context.Context, record domain.AccessRecord,
) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockAccessRepository) GetAccessRecord(
	ctx context.Context, identity domain.Identity, paywallID uint64,
) (*domain.AccessRecord, error) {
	args := m.Called(ctx, identity, paywallID)

	var res *domain.AccessRecord
	if a := args.Get(0); a != nil {
		res = a.(*domain.AccessRecord)
	}
	return res, args.Error(1)
}

func (m *mockAccessRepository) DeleteAccessRecordsForPaywall(
	ctx context.Context, paywallID uint64,
) error {
	args := m.Called(ctx, paywallID)
	return args.Error(0)
}

// **** VaultRepository ****

type mockVaultRepository struct {
	mock.Mock
}

func (m *mockVaultRepository) GetOrCreateVault(
	ctx context.Context,
) (*domain.Vault, error) {
	args := m.Called(ctx)

	var res *domain.Vault
	if a := args.Get(0); a != nil {
		res = a.(*domain.Vault)
	}
	return res, args.Error(1)
}

// **** LedgerService ****

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) BalanceOf(
	ctx context.Context, account ports.Account,
) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockLedger) Transfer(
	ctx context.Context,
	fromSubaccount []byte, to ports.Account, amount, fee, memo uint64,
) (uint64, error) {
	args := m.Called(ctx, fromSubaccount, to, amount, fee, memo)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockLedger) TransferLegacy(
	ctx context.Context,
	fromSubaccount []byte, toAddress string, amount, memo uint64,
) (uint64, error) {
	args := m.Called(ctx, fromSubaccount, toAddress, amount, memo)
	return args.Get(0).(uint64), args.Error(1)
}

// **** CreditConverter ****

type mockConverter struct {
	mock.Mock
}

func (m *mockConverter) AccountOwner() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockConverter) NotifyConversion(
	ctx context.Context, blockIndex uint64,
) (uint64, error) {
	args := m.Called(ctx, blockIndex)
	return args.Get(0).(uint64), args.Error(1)
}
