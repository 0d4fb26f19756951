package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

// AverageUnitPrice returns the blended unit price of an allocation, or an
// invalid NullDecimal when nothing was requested. No rounding is applied.
func AverageUnitPrice(result entities.AllocationResult, requested entities.Quantity) decimal.NullDecimal {
	if requested <= 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(result.TotalCost.Div(decimal.NewFromInt(int64(requested))))
}
