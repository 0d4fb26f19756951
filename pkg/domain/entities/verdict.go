package entities

// DiscountVerdict holds the discount of a reference price against a product's
// public price, both gross (VAT-inclusive) and net (VAT removed).
type DiscountVerdict struct {
	ReferencePrice       Money `json:"reference_price"`
	GrossDiscountPercent Money `json:"gross_discount_percent"`
	NetDiscountPercent   Money `json:"net_discount_percent"`
}

// TargetComparison compares a reference price with a buyer-chosen target
type TargetComparison struct {
	TargetPrice  Money `json:"target_price"`
	BelowOrEqual bool  `json:"below_or_equal"`
}

// StockVerdict reports whether the requested quantity fits in total supplier stock
type StockVerdict struct {
	TotalAvailableStock Quantity `json:"total_available_stock"`
	Exceeded            bool     `json:"exceeded"`
}
