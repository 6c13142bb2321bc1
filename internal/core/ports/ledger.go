package ports

import (
	"context"
	"errors"
	"fmt"
)

// Account is the addressable unit the external ledger understands: an owner
// address plus an optional 32-byte subaccount isolating a slot under it.
type Account struct {
	Owner string
	// Subaccount is nil for the owner's default account.
	Subaccount []byte
}

// Memo tags identifying which conversion variant a transfer requested.
const (
	// MemoTopUp marks a transfer that tops up a compute service's credit.
	MemoTopUp uint64 = 0x50555054
	// MemoMint marks a transfer that mints credit for an end user.
	MemoMint uint64 = 0x544e494d
)

var (
	// ErrLedgerInsufficientFunds ...
	ErrLedgerInsufficientFunds = errors.New("ledger: insufficient funds")
	// ErrLedgerTxCreatedInFuture is the ledger's clock-skew rejection.
	ErrLedgerTxCreatedInFuture = errors.New("ledger: transfer created in the future")
	// ErrLedgerUnavailable ...
	ErrLedgerUnavailable = errors.New("ledger: temporarily unavailable")
)

// BadFeeError is returned when the transfer fee does not match what the
// ledger expects.
type BadFeeError struct {
	ExpectedFee uint64
}

func (e *BadFeeError) Error() string {
	return fmt.Sprintf("ledger: bad fee, expected %d", e.ExpectedFee)
}

// DuplicateTransferError is returned when the ledger has already applied an
// identical transfer, reporting the block that holds it.
type DuplicateTransferError struct {
	BlockIndex uint64
}

func (e *DuplicateTransferError) Error() string {
	return fmt.Sprintf("ledger: duplicate of transfer in block %d", e.BlockIndex)
}

// LedgerError is the generic code+message failure shape of the ledger.
type LedgerError struct {
	Code    int64
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger: error %d: %s", e.Code, e.Message)
}

// LedgerService is the external ledger the daemon settles payments on. All
// transfers are sourced from a subaccount of the daemon's own ledger
// identity; successful transfers return the block reference holding them.
type LedgerService interface {
	// BalanceOf returns the spendable amount on the account.
	BalanceOf(ctx context.Context, account Account) (uint64, error)
	// Transfer moves amount from the daemon's subaccount to the destination
	// account. fee is the ledger's transfer fee, memo tags the intent.
	Transfer(
		ctx context.Context,
		fromSubaccount []byte, to Account, amount, fee, memo uint64,
	) (uint64, error)
	// TransferLegacy is the single-recipient-address variant kept for legacy
	// 32-byte addresses: fixed fee decided by the ledger, numeric memo.
	TransferLegacy(
		ctx context.Context,
		fromSubaccount []byte, toAddress string, amount, memo uint64,
	) (uint64, error)
}
