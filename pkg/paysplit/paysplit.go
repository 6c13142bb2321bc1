package paysplit

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// OneHundred is the percentage denominator used for both the protocol fee
// and the destination splits.
var OneHundred = decimal.NewFromInt(100)

func init() {
	decimal.DivisionPrecision = 8
}

// Fee returns the protocol fee for the given price: 1% of the price rounded
// down, with a floor of minFee. Whether the price can actually cover the fee
// is the caller's concern.
func Fee(price, minFee uint64) uint64 {
	priceDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(price), 0)
	fee := priceDecimal.Div(OneHundred).Floor().BigInt().Uint64()
	if fee < minFee {
		return minFee
	}
	return fee
}

// Split divides net across the given percentages. Every entry but the last
// receives floor(net * pct / 100); the last receives whatever remains, so
// the returned amounts always sum to net exactly. The order of percentages
// must be the order the destinations were declared in.
func Split(net uint64, percentages []uint32) []uint64 {
	amounts := make([]uint64, len(percentages))
	if len(percentages) == 0 {
		return amounts
	}

	netDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(net), 0)
	var assigned uint64
	for i, pct := range percentages[:len(percentages)-1] {
		share := netDecimal.
			Mul(decimal.NewFromInt(int64(pct))).
			Div(OneHundred).
			Floor().
			BigInt().Uint64()
		amounts[i] = share
		assigned += share
	}
	amounts[len(amounts)-1] = net - assigned

	return amounts
}
