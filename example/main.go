package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/application/dto"
	"github.com/vsinha/rxprocure/pkg/application/services"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
	"github.com/vsinha/rxprocure/pkg/domain/services/pricing"
)

func main() {
	product := setupAmoxicillin()
	quoteService := services.NewQuoteService(services.QuoteServiceConfig{
		Memo: services.NewMemo(64),
	})

	fmt.Println("💊 Quoting AMOXICILLIN_1G (public price 100.00, VAT 10%)")
	fmt.Println()

	target := decimal.NewNullDecimal(decimal.NewFromInt(85))
	for _, quantity := range []entities.Quantity{8, 20, 16} {
		quote, err := quoteService.Quote(product, quantity, target)
		if err != nil {
			fmt.Printf("❌ Quote failed: %v\n", err)
			return
		}
		printQuote(quote)
	}

	// Discount of a single reference price against a 22% VAT product
	fmt.Println("🧾 Discount of 40.00 against public price 50.00 at 22% VAT")
	paracetamol, err := entities.NewProduct("PARACETAMOL_500", decimal.NewFromInt(50), decimal.NewFromInt(22), nil)
	if err != nil {
		fmt.Printf("❌ Invalid product: %v\n", err)
		return
	}
	verdict, err := pricing.EvaluateDiscount(decimal.NewFromInt(40), paracetamol)
	if err != nil {
		fmt.Printf("❌ Discount failed: %v\n", err)
		return
	}
	netPublic, _ := pricing.NetPublicPrice(paracetamol.PublicPrice, paracetamol.VATRatePercent)
	fmt.Printf("  Gross discount: %s%%\n", verdict.GrossDiscountPercent.StringFixed(2))
	fmt.Printf("  Net public price: %s\n", netPublic.StringFixed(2))
	fmt.Printf("  Net discount: %s%%\n", verdict.NetDiscountPercent.StringFixed(2))
	fmt.Println()

	fmt.Println("✅ Quoting complete!")
}

func printQuote(quote *dto.LineQuote) {
	fmt.Printf("📦 %d units (stock %d)\n", quote.RequestedQuantity, quote.Stock.TotalAvailableStock)
	for _, line := range quote.Allocation.Lines {
		fmt.Printf("  %s: %d x %s\n", line.Offer.SupplierID, line.UnitsTaken, line.UnitPrice.StringFixed(2))
	}
	if quote.Allocation.UnmetQuantity > 0 {
		fmt.Printf("  public price: %d x %s\n", quote.Allocation.UnmetQuantity, quote.Allocation.UnmetUnitPrice.StringFixed(2))
	}
	fmt.Printf("  Total: %s | Average: %s\n",
		quote.Allocation.TotalCost.StringFixed(2),
		quote.Allocation.AverageUnitPrice.Decimal.StringFixed(2))
	if quote.Target != nil && quote.Target.BelowOrEqual {
		fmt.Printf("  ✔ At or below target %s\n", quote.Target.TargetPrice.StringFixed(2))
	} else if quote.Target != nil {
		fmt.Printf("  ✖ Above target %s\n", quote.Target.TargetPrice.StringFixed(2))
	}
	if quote.Stock.Exceeded {
		fmt.Println("  ⚠️  Requested quantity exceeds available stock, line cannot be ordered")
	}
	fmt.Println()
}

func setupAmoxicillin() *entities.Product {
	offers := []entities.SupplierOffer{
		{SupplierID: "WHOLESALE_B", UnitPrice: decimal.NewFromInt(90), AvailableStock: 10},
		{SupplierID: "WHOLESALE_A", UnitPrice: decimal.NewFromInt(80), AvailableStock: 5},
	}
	product, err := entities.NewProduct("AMOXICILLIN_1G", decimal.NewFromInt(100), decimal.NewFromInt(10), offers)
	if err != nil {
		panic(err)
	}
	return product
}
