// Package pricing implements the multi-supplier allocation and discount
// evaluation engine. Every function here is pure and safe for concurrent use
// across independent products.
package pricing

import (
	"sort"

	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

// RankOffers returns the offers sorted by ascending unit price.
// Offers with equal prices keep their input order, which decides which
// supplier is consumed first. The input slice is not modified.
func RankOffers(offers []entities.SupplierOffer) []entities.SupplierOffer {
	ranked := make([]entities.SupplierOffer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UnitPrice.LessThan(ranked[j].UnitPrice)
	})
	return ranked
}
