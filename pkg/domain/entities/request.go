package entities

import "github.com/shopspring/decimal"

// QuoteRequest asks for a quote of a product at a quantity, optionally
// against a buyer-chosen target unit price
type QuoteRequest struct {
	ProductID   ProductID           `json:"product_id"`
	Quantity    Quantity            `json:"quantity"`
	TargetPrice decimal.NullDecimal `json:"target_price"`
}
