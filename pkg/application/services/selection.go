package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/application/dto"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

// Summarize aggregates the verdicts of a selection of quotes. Only lines
// within stock count towards the total cost, and the selection can be
// submitted only when no line exceeds its stock.
func Summarize(quotes []*dto.LineQuote) dto.SelectionSummary {
	summary := dto.SelectionSummary{TotalCost: decimal.Zero}

	for _, quote := range quotes {
		if quote == nil {
			continue
		}
		summary.Lines++

		if quote.Stock.Exceeded {
			summary.StockIssues++
		}

		if quote.Target != nil {
			if quote.Target.BelowOrEqual {
				summary.BelowTarget++
			} else {
				summary.AboveTarget++
			}
		}

		if quote.Coverage == entities.CoverageNoSupplier {
			summary.NoSupplier++
		}
	}

	for _, quote := range SelectableQuotes(quotes) {
		summary.Selectable++
		summary.TotalCost = summary.TotalCost.Add(quote.Allocation.TotalCost)
	}

	summary.CanSubmit = summary.Lines > 0 && summary.StockIssues == 0
	return summary
}

// SummarizeRows summarizes the successful rows of a batch run and counts the
// failed ones. Failed rows have no quote and take no part in the selection.
func SummarizeRows(rows []dto.RowQuote) dto.SelectionSummary {
	quotes := make([]*dto.LineQuote, 0, len(rows))
	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
			continue
		}
		quotes = append(quotes, row.Quote)
	}

	summary := Summarize(quotes)
	summary.Failed = failed
	return summary
}

// SelectableQuotes drops the lines whose requested quantity exceeds stock.
func SelectableQuotes(quotes []*dto.LineQuote) []*dto.LineQuote {
	selectable := make([]*dto.LineQuote, 0, len(quotes))
	for _, quote := range quotes {
		if quote != nil && !quote.Stock.Exceeded {
			selectable = append(selectable, quote)
		}
	}
	return selectable
}
