package ports

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrConversionInvalidTransaction ...
	ErrConversionInvalidTransaction = errors.New("converter: invalid transaction")
	// ErrConversionProcessing means the converter has seen the transfer but
	// has not finished crediting yet.
	ErrConversionProcessing = errors.New("converter: transaction still processing")
	// ErrConversionTooOld ...
	ErrConversionTooOld = errors.New("converter: transaction too old")
)

// ConversionRefundedError is returned when the converter refused the
// transfer and sent the funds back.
type ConversionRefundedError struct {
	Reason string
}

func (e *ConversionRefundedError) Error() string {
	return fmt.Sprintf("converter: refunded: %s", e.Reason)
}

// ConverterError is the generic code+message failure shape of the converter.
type ConverterError struct {
	Code    int64
	Message string
}

func (e *ConverterError) Error() string {
	return fmt.Sprintf("converter: error %d: %s", e.Code, e.Message)
}

// CreditConverter is the external service that exchanges transferred ledger
// asset for compute credit. The transfer itself happens on the ledger, into
// a subaccount of the converter's account; NotifyConversion then points the
// converter at the block holding it.
type CreditConverter interface {
	// AccountOwner is the converter's ledger identity, the owner of every
	// conversion subaccount.
	AccountOwner() string
	// NotifyConversion reports the block reference of a conversion transfer
	// and returns the amount of credit produced.
	NotifyConversion(ctx context.Context, blockIndex uint64) (uint64, error)
}
