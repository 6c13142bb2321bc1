package application

import (
	"time"

	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

// Settlement is the outcome of one destination leg of a payment.
type Settlement struct {
	Destination domain.Destination
	Amount      uint64
	BlockIndex  uint64
	// Converted is true when the amount was exchanged for compute credit.
	Converted bool
	// Credits produced by the conversion, zero for direct transfers.
	Credits uint64
}

// PaymentReceipt summarizes a fully successful payment attempt. The attempt
// id also appears in every log line of the attempt, so partially failed
// attempts can be reconciled from the logs alone.
type PaymentReceipt struct {
	AttemptID   string
	PaywallID   uint64
	Payer       domain.Identity
	Fee         uint64
	Net         uint64
	Settlements []Settlement
	ExpiresAt   time.Time
}

// PaymentSource selects which deposit slot a payment is funded from.
type PaymentSource string

const (
	// SourceDeposit pays from the per-paywall one-time deposit slot.
	SourceDeposit PaymentSource = "deposit"
	// SourceWallet pays from the shared per-user wallet slot.
	SourceWallet PaymentSource = "wallet"
)
