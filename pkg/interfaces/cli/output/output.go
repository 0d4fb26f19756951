package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vsinha/rxprocure/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Formatter Formatter
	Out       io.Writer
}

// Generate renders the batch rows and their summary in the configured format
func Generate(rows []dto.RowQuote, summary dto.SelectionSummary, config Config) error {
	if config.Out == nil {
		config.Out = os.Stdout
	}

	switch config.Format {
	case "text", "":
		return generateTextOutput(rows, summary, config)
	case "json":
		return generateJSONOutput(rows, summary, config)
	case "csv":
		return generateCSVOutput(rows, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates a human-readable quote table
func generateTextOutput(rows []dto.RowQuote, summary dto.SelectionSummary, config Config) error {
	out := config.Out
	f := config.Formatter

	fmt.Fprintf(out, "Quote Summary\n")
	fmt.Fprintf(out, "=============\n\n")

	fmt.Fprintf(out, "%-20s %8s %8s %14s %14s %9s %9s %-14s\n",
		"Product", "Qty", "Stock", "Avg Price", "Total", "Gross", "Net", "Status")
	fmt.Fprintf(out, "%-20s %8s %8s %14s %14s %9s %9s %-14s\n",
		"--------------------", "--------", "--------", "--------------", "--------------",
		"---------", "---------", "--------------")

	for _, row := range rows {
		if row.Err != nil {
			fmt.Fprintf(out, "%-20s %8d %8s %14s %14s %9s %9s ERROR: %v\n",
				row.Request.ProductID, row.Request.Quantity, "-", "-", "-", "-", "-", row.Err)
			continue
		}

		q := row.Quote
		gross, net := "-", "-"
		if q.AverageDiscount != nil {
			gross = f.Percent(q.AverageDiscount.GrossDiscountPercent)
			net = f.Percent(q.AverageDiscount.NetDiscountPercent)
		}

		fmt.Fprintf(out, "%-20s %8d %8d %14s %14s %9s %9s %-14s\n",
			q.ProductID,
			q.RequestedQuantity,
			q.Stock.TotalAvailableStock,
			f.NullMoney(q.Allocation.AverageUnitPrice),
			f.Money(q.Allocation.TotalCost),
			gross,
			net,
			status(q))

		if config.Verbose {
			writeOfferDetails(out, q, f)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Lines: %d (selectable %d, failed %d)\n", summary.Lines, summary.Selectable, summary.Failed)
	fmt.Fprintf(out, "Target: %d below / %d above\n", summary.BelowTarget, summary.AboveTarget)
	fmt.Fprintf(out, "Stock issues: %d, no supplier: %d\n", summary.StockIssues, summary.NoSupplier)
	fmt.Fprintf(out, "Selectable total: %s\n", f.Money(summary.TotalCost))
	if summary.CanSubmit {
		fmt.Fprintf(out, "Order can be submitted\n")
	} else {
		fmt.Fprintf(out, "Order cannot be submitted\n")
	}

	return nil
}

func writeOfferDetails(out io.Writer, q *dto.LineQuote, f Formatter) {
	for _, line := range q.Allocation.Lines {
		fmt.Fprintf(out, "    take %d x %s from %s\n", line.UnitsTaken, f.Money(line.UnitPrice), supplierLabel(string(line.Offer.SupplierID)))
	}
	if q.Allocation.UnmetQuantity > 0 {
		fmt.Fprintf(out, "    unmet %d x %s at public price\n", q.Allocation.UnmetQuantity, f.Money(q.Allocation.UnmetUnitPrice))
	}
	for _, offer := range q.BestOffers {
		fmt.Fprintf(out, "    offer %-12s %s  stock %d  gross %s  net %s\n",
			supplierLabel(string(offer.Offer.SupplierID)),
			f.Money(offer.Offer.UnitPrice),
			offer.Offer.AvailableStock,
			f.Percent(offer.Discount.GrossDiscountPercent),
			f.Percent(offer.Discount.NetDiscountPercent))
	}
	if q.HiddenOffers > 0 {
		fmt.Fprintf(out, "    +%d more offers\n", q.HiddenOffers)
	}
}

func status(q *dto.LineQuote) string {
	if q.Stock.Exceeded {
		return "STOCK EXCEEDED"
	}
	if q.Target != nil && !q.Target.BelowOrEqual {
		return "ABOVE TARGET"
	}
	if q.Target != nil {
		return "BELOW TARGET"
	}
	return "OK"
}

func supplierLabel(id string) string {
	if id == "" {
		return "(unnamed)"
	}
	return id
}

type jsonRow struct {
	dto.RowQuote
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	Rows    []jsonRow            `json:"rows"`
	Summary dto.SelectionSummary `json:"summary"`
}

// generateJSONOutput creates JSON output with raw, unrounded decimals
func generateJSONOutput(rows []dto.RowQuote, summary dto.SelectionSummary, config Config) error {
	report := jsonReport{Rows: make([]jsonRow, 0, len(rows)), Summary: summary}
	for _, row := range rows {
		jr := jsonRow{RowQuote: row}
		if row.Err != nil {
			jr.Error = row.Err.Error()
		}
		report.Rows = append(report.Rows, jr)
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Out, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "quotes.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes quotes.csv and allocations.csv
func generateCSVOutput(rows []dto.RowQuote, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	quotesFile := filepath.Join(config.OutputDir, "quotes.csv")
	if err := writeCSV(quotesFile, config.Formatter, quoteRecords(rows, config.Formatter)); err != nil {
		return fmt.Errorf("failed to write quotes CSV: %w", err)
	}

	allocFile := filepath.Join(config.OutputDir, "allocations.csv")
	if err := writeCSV(allocFile, config.Formatter, allocationRecords(rows, config.Formatter)); err != nil {
		return fmt.Errorf("failed to write allocations CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "CSV results saved to:\n")
		fmt.Fprintf(config.Out, "  Quotes: %s\n", quotesFile)
		fmt.Fprintf(config.Out, "  Allocations: %s\n", allocFile)
	}
	return nil
}

func writeCSV(filename string, f Formatter, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = f.FieldSeparator()
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

// CSV cells carry no currency symbol so spreadsheets keep them numeric
func quoteRecords(rows []dto.RowQuote, f Formatter) [][]string {
	f.CurrencySymbol = ""
	records := [][]string{{
		"product_id", "quantity", "total_available_stock", "exceeded", "selectable", "coverage",
		"unmet_quantity", "total_cost", "average_unit_price", "gross_discount_percent",
		"net_discount_percent", "target_price", "below_target", "error",
	}}

	for _, row := range rows {
		if row.Err != nil {
			records = append(records, []string{
				string(row.Request.ProductID), strconv.FormatInt(int64(row.Request.Quantity), 10),
				"", "", "false", "", "", "", "", "", "", "", "", row.Err.Error(),
			})
			continue
		}

		q := row.Quote
		average, gross, net := "", "", ""
		if q.Allocation.AverageUnitPrice.Valid {
			average = f.Number(q.Allocation.AverageUnitPrice.Decimal)
		}
		if q.AverageDiscount != nil {
			gross = f.Number(q.AverageDiscount.GrossDiscountPercent)
			net = f.Number(q.AverageDiscount.NetDiscountPercent)
		}
		targetPrice, below := "", ""
		if q.TargetPrice.Valid {
			targetPrice = f.Number(q.TargetPrice.Decimal)
		}
		if q.Target != nil {
			below = strconv.FormatBool(q.Target.BelowOrEqual)
		}

		records = append(records, []string{
			string(q.ProductID),
			strconv.FormatInt(int64(q.RequestedQuantity), 10),
			strconv.FormatInt(int64(q.Stock.TotalAvailableStock), 10),
			strconv.FormatBool(q.Stock.Exceeded),
			strconv.FormatBool(q.Selectable),
			q.Coverage.String(),
			strconv.FormatInt(int64(q.Allocation.UnmetQuantity), 10),
			f.Number(q.Allocation.TotalCost),
			average,
			gross,
			net,
			targetPrice,
			below,
			"",
		})
	}
	return records
}

func allocationRecords(rows []dto.RowQuote, f Formatter) [][]string {
	f.CurrencySymbol = ""
	records := [][]string{{"row", "product_id", "source", "supplier_id", "units", "unit_price", "cost"}}

	for _, row := range rows {
		if row.Err != nil {
			continue
		}
		q := row.Quote
		index := strconv.Itoa(row.Index)
		for _, line := range q.Allocation.Lines {
			records = append(records, []string{
				index, string(q.ProductID), "supplier", strings.TrimSpace(string(line.Offer.SupplierID)),
				strconv.FormatInt(int64(line.UnitsTaken), 10), f.Number(line.UnitPrice), f.Number(line.Cost()),
			})
		}
		if q.Allocation.UnmetQuantity > 0 {
			records = append(records, []string{
				index, string(q.ProductID), "public_price", "",
				strconv.FormatInt(int64(q.Allocation.UnmetQuantity), 10),
				f.Number(q.Allocation.UnmetUnitPrice), f.Number(q.Allocation.UnmetCost()),
			})
		}
	}
	return records
}
