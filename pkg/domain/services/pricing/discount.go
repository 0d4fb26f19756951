package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// GrossDiscount returns the percentage saved by reference against the
// VAT-inclusive public price. A reference above the public price yields a
// negative percentage.
func GrossDiscount(reference, publicPrice entities.Money) (entities.Money, error) {
	if err := checkPublicPrice(publicPrice, "gross discount"); err != nil {
		return decimal.Zero, err
	}
	return publicPrice.Sub(reference).Div(publicPrice).Mul(hundred), nil
}

// NetPublicPrice strips VAT from the public price.
func NetPublicPrice(publicPrice, vatRatePercent entities.Money) (entities.Money, error) {
	if err := checkPublicPrice(publicPrice, "net public price"); err != nil {
		return decimal.Zero, err
	}
	if vatRatePercent.IsNegative() {
		return decimal.Zero, apperror.NewInvalidVATRate(vatRatePercent.String())
	}
	return publicPrice.Div(vatFactor(vatRatePercent)), nil
}

// NetDiscount returns the percentage saved by reference against the public
// price with VAT removed. Reference prices are VAT-exclusive already.
//
// (net − ref) / net with net = public / f reduces to (public − ref·f) / public,
// which keeps the whole computation to a single division.
func NetDiscount(reference, publicPrice, vatRatePercent entities.Money) (entities.Money, error) {
	if err := checkPublicPrice(publicPrice, "net discount"); err != nil {
		return decimal.Zero, err
	}
	if vatRatePercent.IsNegative() {
		return decimal.Zero, apperror.NewInvalidVATRate(vatRatePercent.String())
	}
	grossedUp := reference.Mul(vatFactor(vatRatePercent))
	return publicPrice.Sub(grossedUp).Div(publicPrice).Mul(hundred), nil
}

// EvaluateDiscount computes both discounts of reference against product.
func EvaluateDiscount(reference entities.Money, product *entities.Product) (entities.DiscountVerdict, error) {
	gross, err := GrossDiscount(reference, product.PublicPrice)
	if err != nil {
		return entities.DiscountVerdict{}, err
	}
	net, err := NetDiscount(reference, product.PublicPrice, product.VATRatePercent)
	if err != nil {
		return entities.DiscountVerdict{}, err
	}
	return entities.DiscountVerdict{
		ReferencePrice:       reference,
		GrossDiscountPercent: gross,
		NetDiscountPercent:   net,
	}, nil
}

// CompareToTarget reports whether reference is at or below the target price.
func CompareToTarget(reference, target entities.Money) entities.TargetComparison {
	return entities.TargetComparison{
		TargetPrice:  target,
		BelowOrEqual: reference.LessThanOrEqual(target),
	}
}

func vatFactor(vatRatePercent entities.Money) entities.Money {
	return one.Add(vatRatePercent.Div(hundred))
}

// checkPublicPrice fails loudly instead of letting a zero base turn into a
// silent zero discount.
func checkPublicPrice(publicPrice entities.Money, operation string) error {
	if publicPrice.IsZero() {
		return apperror.NewDivisionByZero(operation)
	}
	if publicPrice.IsNegative() {
		return apperror.NewInvalidPublicPrice(publicPrice.String())
	}
	return nil
}
