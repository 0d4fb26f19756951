package services

import (
	"context"
	"errors"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/rxprocure/pkg/application/dto"
	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
	"github.com/vsinha/rxprocure/pkg/domain/repositories"
	"github.com/vsinha/rxprocure/pkg/infrastructure/logger"
	"github.com/vsinha/rxprocure/pkg/infrastructure/metrics"
)

// BatchQuoter evaluates many quote requests in parallel. Rows are independent;
// each row's pipeline runs sequentially on one goroutine.
type BatchQuoter struct {
	quotes      *QuoteService
	productRepo repositories.ProductRepository
	workers     int
	metrics     *metrics.Metrics
	log         *logger.Logger
}

// NewBatchQuoter creates a batch quoter. workers < 1 uses one worker per CPU.
func NewBatchQuoter(
	quotes *QuoteService,
	productRepo repositories.ProductRepository,
	workers int,
	m *metrics.Metrics,
	log *logger.Logger,
) *BatchQuoter {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BatchQuoter{
		quotes:      quotes,
		productRepo: productRepo,
		workers:     workers,
		metrics:     m,
		log:         log.WithComponent("batch"),
	}
}

// QuoteAll evaluates every request and returns one row per request, in
// request order. Per-row failures are reported on the row. If ctx is done
// before all rows are scheduled, QuoteAll returns ctx.Err() and no rows.
func (b *BatchQuoter) QuoteAll(ctx context.Context, requests []entities.QuoteRequest) ([]dto.RowQuote, error) {
	runLog := b.log.With("run_id", uuid.NewString())
	runLog.Infow("batch quote started", "rows", len(requests), "workers", b.workers)
	b.metrics.ObserveBatch(len(requests))

	rows := make([]dto.RowQuote, len(requests))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, request := range requests {
		if ctx.Err() != nil {
			break
		}
		i, request := i, request
		g.Go(func() error {
			rows[i] = b.quoteRow(i, request)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		runLog.Warnw("batch quote cancelled", "error", err)
		return nil, err
	}

	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}
	runLog.Infow("batch quote finished", "rows", len(rows), "failed", failed)

	return rows, nil
}

func (b *BatchQuoter) quoteRow(index int, request entities.QuoteRequest) dto.RowQuote {
	row := dto.RowQuote{Index: index, Request: request}

	product, err := b.productRepo.GetProduct(request.ProductID)
	if err != nil {
		if errors.Is(err, apperror.ErrProductNotFound) {
			b.metrics.ObserveQuote(metrics.OutcomeNotFound, false)
		} else {
			b.metrics.ObserveQuote(metrics.OutcomeError, false)
		}
		row.Err = err
		return row
	}

	quote, err := b.quotes.Quote(product, request.Quantity, request.TargetPrice)
	if err != nil {
		row.Err = err
		return row
	}
	row.Quote = quote
	return row
}
