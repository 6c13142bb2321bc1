package application

import (
	"errors"
	"fmt"
)

var (
	// ErrPriceBelowFee is returned at payment time for configs whose price
	// cannot cover the minimum protocol fee.
	ErrPriceBelowFee = errors.New("paywall price does not cover the minimum protocol fee")
	// ErrUnknownPaymentSource ...
	ErrUnknownPaymentSource = errors.New("unknown payment source")
)

// InsufficientBalanceError is returned when the deposit slot cannot cover
// the price plus every transfer fee of the attempt. No transfer has happened
// when this is returned.
type InsufficientBalanceError struct {
	Required  uint64
	Available uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf(
		"insufficient balance: required %d, available %d",
		e.Required, e.Available,
	)
}

// ConversionIncompleteError is the terminal partial state of a credit
// conversion: the transfer left the source (BlockIndex holds it) but the
// converter was not successfully notified. It must never be reinterpreted as
// a config or balance error; the operator reconciles it manually with the
// block reference.
type ConversionIncompleteError struct {
	BlockIndex uint64
	Err        error
}

func (e *ConversionIncompleteError) Error() string {
	return fmt.Sprintf(
		"conversion incomplete: funds transferred in block %d but notification failed: %s",
		e.BlockIndex, e.Err,
	)
}

func (e *ConversionIncompleteError) Unwrap() error {
	return e.Err
}
