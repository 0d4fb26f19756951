package entities

import (
	"github.com/vsinha/rxprocure/pkg/domain/apperror"
)

// ProductID represents a unique catalog product identifier
type ProductID string

// SupplierID identifies the supplier behind an offer. Display only.
type SupplierID string

// Quantity represents an integer quantity of sellable units
type Quantity int64

// SupplierOffer is a supplier's quoted unit price (VAT-exclusive) and available stock
type SupplierOffer struct {
	SupplierID     SupplierID `json:"supplier_id,omitempty"`
	UnitPrice      Money      `json:"unit_price"`
	AvailableStock Quantity   `json:"available_stock"`
}

// NewSupplierOffer creates a validated SupplierOffer
func NewSupplierOffer(supplierID SupplierID, unitPrice Money, availableStock Quantity) (SupplierOffer, error) {
	if unitPrice.IsNegative() {
		return SupplierOffer{}, apperror.NewInvalidOffer("unit price cannot be negative, got " + unitPrice.String()).
			WithDetail("supplier_id", string(supplierID))
	}
	if availableStock < 0 {
		return SupplierOffer{}, apperror.NewInvalidOffer("available stock cannot be negative").
			WithDetail("supplier_id", string(supplierID)).
			WithDetail("available_stock", int64(availableStock))
	}

	return SupplierOffer{
		SupplierID:     supplierID,
		UnitPrice:      unitPrice,
		AvailableStock: availableStock,
	}, nil
}

// Product is a catalog snapshot of a product with its public (VAT-inclusive)
// price and the current supplier offers.
type Product struct {
	ID             ProductID       `json:"id"`
	PublicPrice    Money           `json:"public_price"`
	VATRatePercent Money           `json:"vat_rate_percent"`
	Offers         []SupplierOffer `json:"offers"`
}

// NewProduct creates a validated Product. Offers may be empty.
func NewProduct(id ProductID, publicPrice, vatRatePercent Money, offers []SupplierOffer) (*Product, error) {
	if id == "" {
		return nil, apperror.NewInvalidInput("product id cannot be empty")
	}
	if !publicPrice.IsPositive() {
		return nil, apperror.NewInvalidPublicPrice(publicPrice.String()).WithDetail("product_id", string(id))
	}
	if vatRatePercent.IsNegative() {
		return nil, apperror.NewInvalidVATRate(vatRatePercent.String()).WithDetail("product_id", string(id))
	}

	copied := make([]SupplierOffer, len(offers))
	copy(copied, offers)

	return &Product{
		ID:             id,
		PublicPrice:    publicPrice,
		VATRatePercent: vatRatePercent,
		Offers:         copied,
	}, nil
}

// ValidatePublicPrice rejects a public price that is zero or negative.
func ValidatePublicPrice(publicPrice Money) error {
	if !publicPrice.IsPositive() {
		return apperror.NewInvalidPublicPrice(publicPrice.String())
	}
	return nil
}

// ValidateQuantity rejects a negative requested quantity.
func ValidateQuantity(quantity Quantity) error {
	if quantity < 0 {
		return apperror.NewInvalidQuantity(int64(quantity))
	}
	return nil
}
