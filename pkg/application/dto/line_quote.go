package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

// OfferQuote is a ranked supplier offer with its discount against the public price
type OfferQuote struct {
	Offer    entities.SupplierOffer   `json:"offer"`
	Discount entities.DiscountVerdict `json:"discount"`
}

// LineQuote is the complete evaluation of one product line: allocation,
// blended price, discounts, target verdict and stock gate.
// Quotes may be shared through the memo and must be treated as read-only.
type LineQuote struct {
	ProductID         entities.ProductID  `json:"product_id"`
	RequestedQuantity entities.Quantity   `json:"requested_quantity"`
	PublicPrice       entities.Money      `json:"public_price"`
	VATRatePercent    entities.Money      `json:"vat_rate_percent"`
	TargetPrice       decimal.NullDecimal `json:"target_price"`

	Stock      entities.StockVerdict     `json:"stock"`
	Allocation entities.AllocationResult `json:"allocation"`
	Coverage   entities.Coverage         `json:"coverage"`

	// AverageDiscount is nil when nothing was requested
	AverageDiscount *entities.DiscountVerdict `json:"average_discount"`
	// OfferDiscounts lists every offer in ranked order
	OfferDiscounts []OfferQuote `json:"offer_discounts"`
	// Target is nil unless a target price was given and quantity > 0
	Target *entities.TargetComparison `json:"target"`

	// BestOffers is the leading window of ranked offers that have stock
	BestOffers   []OfferQuote `json:"best_offers"`
	HiddenOffers int          `json:"hidden_offers"`

	// Selectable is false whenever the requested quantity exceeds total stock
	Selectable bool `json:"selectable"`
}

// RowQuote is the outcome of one request in a batch run
type RowQuote struct {
	Index   int                   `json:"index"`
	Request entities.QuoteRequest `json:"request"`
	Quote   *LineQuote            `json:"quote,omitempty"`
	Err     error                 `json:"-"`
}

// SelectionSummary aggregates per-line verdicts of a selection
type SelectionSummary struct {
	Lines       int            `json:"lines"`
	Selectable  int            `json:"selectable"`
	BelowTarget int            `json:"below_target"`
	AboveTarget int            `json:"above_target"`
	StockIssues int            `json:"stock_issues"`
	NoSupplier  int            `json:"no_supplier"`
	Failed      int            `json:"failed"`
	TotalCost   entities.Money `json:"total_cost"`
	CanSubmit   bool           `json:"can_submit"`
}
