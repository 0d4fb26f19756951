package entities

import "github.com/shopspring/decimal"

// Coverage describes where the units of an allocation come from
type Coverage int

const (
	// CoverageNone is a zero-quantity request; nothing was allocated or priced.
	CoverageNone Coverage = iota
	// CoverageFull means suppliers cover the whole request.
	CoverageFull
	// CoveragePartial means suppliers cover part of the request and the
	// remainder is priced at the public price.
	CoveragePartial
	// CoverageNoSupplier means no supplier stock was used at all and the whole
	// request is priced at the public price.
	CoverageNoSupplier
)

// String method for Coverage enum
func (c Coverage) String() string {
	switch c {
	case CoverageNone:
		return "None"
	case CoverageFull:
		return "Full"
	case CoveragePartial:
		return "Partial"
	case CoverageNoSupplier:
		return "NoSupplier"
	default:
		return "Unknown"
	}
}

// MarshalText renders the coverage by name in JSON and CSV output.
func (c Coverage) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AllocationLine is the share of a request taken from a single offer
type AllocationLine struct {
	Offer      SupplierOffer `json:"offer"`
	UnitsTaken Quantity      `json:"units_taken"`
	UnitPrice  Money         `json:"unit_price"`
}

// Cost returns UnitsTaken × UnitPrice.
func (l AllocationLine) Cost() Money {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.UnitsTaken)))
}

// AllocationResult is a least-cost fulfilment plan for a requested quantity.
// Sum of UnitsTaken plus UnmetQuantity always equals the requested quantity.
type AllocationResult struct {
	Lines            []AllocationLine    `json:"lines"`
	UnmetQuantity    Quantity            `json:"unmet_quantity"`
	UnmetUnitPrice   Money               `json:"unmet_unit_price"`
	TotalCost        Money               `json:"total_cost"`
	AverageUnitPrice decimal.NullDecimal `json:"average_unit_price"`
}

// AllocatedQuantity returns the units taken from supplier offers.
func (r AllocationResult) AllocatedQuantity() Quantity {
	var total Quantity
	for _, line := range r.Lines {
		total += line.UnitsTaken
	}
	return total
}

// RequestedQuantity returns allocated plus unmet units.
func (r AllocationResult) RequestedQuantity() Quantity {
	return r.AllocatedQuantity() + r.UnmetQuantity
}

// UnmetCost returns the public-price fallback cost of the unmet remainder.
func (r AllocationResult) UnmetCost() Money {
	return r.UnmetUnitPrice.Mul(decimal.NewFromInt(int64(r.UnmetQuantity)))
}

// Coverage classifies the allocation.
func (r AllocationResult) Coverage() Coverage {
	switch {
	case r.RequestedQuantity() == 0:
		return CoverageNone
	case r.UnmetQuantity == 0:
		return CoverageFull
	case len(r.Lines) == 0:
		return CoverageNoSupplier
	default:
		return CoveragePartial
	}
}
