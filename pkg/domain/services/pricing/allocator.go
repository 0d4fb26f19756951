package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

// AllocateCapacity greedily fills requested units from ranked offers,
// cheapest first, capped by each offer's stock. Any shortfall is priced at
// the public price. Offers must already be ranked (see RankOffers).
func AllocateCapacity(
	ranked []entities.SupplierOffer,
	requested entities.Quantity,
	publicPrice entities.Money,
) (entities.AllocationResult, error) {
	if err := entities.ValidateQuantity(requested); err != nil {
		return entities.AllocationResult{}, err
	}

	result := entities.AllocationResult{
		Lines:          []entities.AllocationLine{},
		UnmetUnitPrice: publicPrice,
		TotalCost:      decimal.Zero,
	}

	remaining := requested
	for _, offer := range ranked {
		if remaining == 0 {
			break
		}

		units := min(remaining, offer.AvailableStock)
		if units <= 0 {
			continue
		}

		line := entities.AllocationLine{
			Offer:      offer,
			UnitsTaken: units,
			UnitPrice:  offer.UnitPrice,
		}
		result.Lines = append(result.Lines, line)
		result.TotalCost = result.TotalCost.Add(line.Cost())
		remaining -= units
	}

	result.UnmetQuantity = remaining
	result.TotalCost = result.TotalCost.Add(result.UnmetCost())
	result.AverageUnitPrice = AverageUnitPrice(result, requested)

	return result, nil
}
