package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/application/dto"
	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
	"github.com/vsinha/rxprocure/pkg/domain/services/pricing"
	"github.com/vsinha/rxprocure/pkg/infrastructure/logger"
	"github.com/vsinha/rxprocure/pkg/infrastructure/metrics"
)

// DefaultBestOffers is the size of the best-offer window when none is configured
const DefaultBestOffers = 3

// QuoteServiceConfig configures a QuoteService. Zero values are usable.
type QuoteServiceConfig struct {
	BestOffers int
	Memo       *Memo
	Metrics    *metrics.Metrics
	Logger     *logger.Logger
}

// QuoteService runs the pricing pipeline for a single product line:
// ranking, allocation, aggregation and discount evaluation, plus the
// independent stock gate.
type QuoteService struct {
	bestOffers int
	memo       *Memo
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.BestOffers <= 0 {
		cfg.BestOffers = DefaultBestOffers
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &QuoteService{
		bestOffers: cfg.BestOffers,
		memo:       cfg.Memo,
		metrics:    cfg.Metrics,
		log:        cfg.Logger.WithComponent("quote"),
	}
}

// Quote evaluates product at quantity against an optional target price.
// It returns either a complete quote or an error, never a partial result.
func (s *QuoteService) Quote(
	product *entities.Product,
	quantity entities.Quantity,
	target decimal.NullDecimal,
) (*dto.LineQuote, error) {
	if product == nil {
		s.metrics.ObserveQuote(metrics.OutcomeInvalidInput, false)
		return nil, apperror.NewInvalidInput("product is required")
	}
	if err := entities.ValidateQuantity(quantity); err != nil {
		s.reject(product, quantity, err)
		return nil, err
	}
	if err := entities.ValidatePublicPrice(product.PublicPrice); err != nil {
		s.reject(product, quantity, err)
		return nil, err
	}

	key := NewMemoKey(product, quantity, target)
	if quote, ok := s.memo.Get(key); ok {
		s.metrics.ObserveMemo(true)
		s.metrics.ObserveQuote(metrics.OutcomeQuoted, quote.Stock.Exceeded)
		return quote, nil
	}
	if s.memo != nil {
		s.metrics.ObserveMemo(false)
	}

	quote, err := s.evaluate(product, quantity, target)
	if err != nil {
		s.metrics.ObserveQuote(metrics.OutcomeError, false)
		s.log.Errorw("quote evaluation failed", "product_id", product.ID, "quantity", quantity, "error", err)
		return nil, err
	}

	s.memo.Put(key, quote)
	s.metrics.ObserveQuote(metrics.OutcomeQuoted, quote.Stock.Exceeded)
	s.log.Debugw("quoted line",
		"product_id", product.ID,
		"quantity", quantity,
		"coverage", quote.Coverage.String(),
		"exceeded", quote.Stock.Exceeded,
	)
	return quote, nil
}

func (s *QuoteService) evaluate(
	product *entities.Product,
	quantity entities.Quantity,
	target decimal.NullDecimal,
) (*dto.LineQuote, error) {
	stock := pricing.CheckStock(product.Offers, quantity)
	ranked := pricing.RankOffers(product.Offers)

	allocation, err := pricing.AllocateCapacity(ranked, quantity, product.PublicPrice)
	if err != nil {
		return nil, err
	}

	quote := &dto.LineQuote{
		ProductID:         product.ID,
		RequestedQuantity: quantity,
		PublicPrice:       product.PublicPrice,
		VATRatePercent:    product.VATRatePercent,
		TargetPrice:       target,
		Stock:             stock,
		Allocation:        allocation,
		Coverage:          allocation.Coverage(),
		OfferDiscounts:    make([]dto.OfferQuote, 0, len(ranked)),
		BestOffers:        []dto.OfferQuote{},
		Selectable:        !stock.Exceeded,
	}

	for _, offer := range ranked {
		verdict, err := pricing.EvaluateDiscount(offer.UnitPrice, product)
		if err != nil {
			return nil, err
		}
		quote.OfferDiscounts = append(quote.OfferDiscounts, dto.OfferQuote{Offer: offer, Discount: verdict})
	}

	for _, offerQuote := range quote.OfferDiscounts {
		if offerQuote.Offer.AvailableStock == 0 {
			continue
		}
		if len(quote.BestOffers) < s.bestOffers {
			quote.BestOffers = append(quote.BestOffers, offerQuote)
		} else {
			quote.HiddenOffers++
		}
	}

	if average := allocation.AverageUnitPrice; average.Valid {
		verdict, err := pricing.EvaluateDiscount(average.Decimal, product)
		if err != nil {
			return nil, err
		}
		quote.AverageDiscount = &verdict

		if target.Valid {
			comparison := pricing.CompareToTarget(average.Decimal, target.Decimal)
			quote.Target = &comparison
		}
	}

	return quote, nil
}

func (s *QuoteService) reject(product *entities.Product, quantity entities.Quantity, err error) {
	s.metrics.ObserveQuote(metrics.OutcomeInvalidInput, false)
	s.log.Debugw("quote rejected", "product_id", product.ID, "quantity", quantity, "error", err)
}
