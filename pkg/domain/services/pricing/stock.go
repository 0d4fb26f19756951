package pricing

import "github.com/vsinha/rxprocure/pkg/domain/entities"

// TotalAvailableStock sums the stock of all offers.
func TotalAvailableStock(offers []entities.SupplierOffer) entities.Quantity {
	var total entities.Quantity
	for _, offer := range offers {
		total += offer.AvailableStock
	}
	return total
}

// CheckStock reports whether requested exceeds the combined supplier stock.
// It is the only input that decides whether a line may be ordered; prices
// play no part in it.
func CheckStock(offers []entities.SupplierOffer, requested entities.Quantity) entities.StockVerdict {
	total := TotalAvailableStock(offers)
	return entities.StockVerdict{
		TotalAvailableStock: total,
		Exceeded:            requested > total,
	}
}
