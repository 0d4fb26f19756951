package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vsinha/rxprocure/pkg/application/services"
	"github.com/vsinha/rxprocure/pkg/infrastructure/logger"
	"github.com/vsinha/rxprocure/pkg/infrastructure/metrics"
	"github.com/vsinha/rxprocure/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/rxprocure/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/rxprocure/pkg/interfaces/cli/output"
)

// Config holds configuration for the quote command
type Config struct {
	ScenarioDir      string
	ProductsFile     string
	OffersFile       string
	RequestsFile     string
	OutputDir        string
	Format           string
	Verbose          bool
	BestOffers       int
	Workers          int
	MemoCapacity     int
	Precision        int32
	DecimalSeparator string
	CurrencySymbol   string
	LogLevel         string
	LogDevelopment   bool
	Help             bool

	// LogOutputPaths overrides the log sinks; stderr when empty
	LogOutputPaths []string

	// Out receives the report; stdout when nil
	Out io.Writer
}

// QuoteCommand loads a catalog snapshot and quote requests from CSV and
// prints the evaluated quotes
type QuoteCommand struct {
	config Config
}

// NewQuoteCommand creates a new quote command with the given configuration
func NewQuoteCommand(config Config) *QuoteCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &QuoteCommand{
		config: config,
	}
}

// Execute runs the quote command
func (c *QuoteCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       c.config.LogLevel,
		Development: c.config.LogDevelopment,
		OutputPaths: c.config.LogOutputPaths,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.WithComponent("rxquote")
	ctx = logger.WithLogger(ctx, log)

	logger.Info(ctx, "loading input files",
		"products", files["Products"],
		"offers", files["Offers"],
		"requests", files["Requests"],
	)

	csvLoader := csv.NewLoader()

	products, err := csvLoader.LoadProducts(files["Products"])
	if err != nil {
		return fmt.Errorf("error loading products: %w", err)
	}

	offers, err := csvLoader.LoadOffers(files["Offers"])
	if err != nil {
		return fmt.Errorf("error loading offers: %w", err)
	}

	requests, err := csvLoader.LoadRequests(files["Requests"])
	if err != nil {
		return fmt.Errorf("error loading requests: %w", err)
	}

	productRepo := memory.NewProductRepository(len(products))
	if err := productRepo.LoadProducts(products); err != nil {
		return fmt.Errorf("failed to load products into repository: %w", err)
	}
	for productID, productOffers := range offers {
		if err := productRepo.AddOffers(productID, productOffers); err != nil {
			return fmt.Errorf("offers reference unknown product: %w", err)
		}
	}

	catalog, err := productRepo.GetAllProducts()
	if err != nil {
		return fmt.Errorf("failed to read product catalog: %w", err)
	}
	withoutOffers := 0
	for _, product := range catalog {
		if len(product.Offers) == 0 {
			withoutOffers++
			logger.Debug(ctx, "product has no supplier offers", "product_id", product.ID)
		}
	}

	logger.Info(ctx, "data loaded",
		"products", productRepo.Count(),
		"without_offers", withoutOffers,
		"offer_groups", len(offers),
		"requests", len(requests),
	)

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	quoteService := services.NewQuoteService(services.QuoteServiceConfig{
		BestOffers: c.config.BestOffers,
		Memo:       services.NewMemo(c.config.MemoCapacity),
		Metrics:    m,
		Logger:     log,
	})
	quoter := services.NewBatchQuoter(quoteService, productRepo, c.config.Workers, m, log)

	startTime := time.Now()
	rows, err := quoter.QuoteAll(ctx, requests)
	if err != nil {
		return fmt.Errorf("error quoting requests: %w", err)
	}
	logger.Info(ctx, "quotes computed", "rows", len(rows), "elapsed", time.Since(startTime))

	summary := services.SummarizeRows(rows)
	if summary.Failed > 0 {
		logger.Warn(ctx, "some requests could not be quoted", "failed", summary.Failed)
	}

	err = output.Generate(rows, summary, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Out:       c.config.Out,
		Formatter: output.Formatter{
			Precision:        c.config.Precision,
			DecimalSeparator: c.config.DecimalSeparator,
			CurrencySymbol:   c.config.CurrencySymbol,
		},
	})
	if err != nil {
		logger.Error(ctx, "failed to write report", "format", c.config.Format, "error", err)
		return err
	}
	return nil
}

// validateInputs validates the input configuration
func (c *QuoteCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.ProductsFile == "" || c.config.OffersFile == "" || c.config.RequestsFile == "") {
		return fmt.Errorf("must specify either -scenario directory or -products, -offers and -requests files")
	}
	if c.config.Precision < 0 {
		return fmt.Errorf("precision cannot be negative, got %d", c.config.Precision)
	}
	return nil
}

// resolveInputFiles determines the input file paths
func (c *QuoteCommand) resolveInputFiles() (map[string]string, error) {
	var productsPath, offersPath, requestsPath string

	if c.config.ScenarioDir != "" {
		productsPath = filepath.Join(c.config.ScenarioDir, "products.csv")
		offersPath = filepath.Join(c.config.ScenarioDir, "offers.csv")
		requestsPath = filepath.Join(c.config.ScenarioDir, "requests.csv")
	} else {
		productsPath = c.config.ProductsFile
		offersPath = c.config.OffersFile
		requestsPath = c.config.RequestsFile
	}

	files := map[string]string{
		"Products": productsPath,
		"Offers":   offersPath,
		"Requests": requestsPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// showHelp displays the help message
func (c *QuoteCommand) showHelp() {
	fmt.Fprint(c.config.Out, `rxquote - multi-supplier price allocation and discount evaluation

USAGE:
    rxquote -scenario <directory>
    rxquote -products <file> -offers <file> -requests <file>

OPTIONS:
    -scenario <dir>            Directory containing products.csv, offers.csv, requests.csv
    -products <file>           Path to products CSV file
    -offers <file>             Path to supplier offers CSV file
    -requests <file>           Path to quote requests CSV file
    -output <dir>              Output directory (required for csv)
    -format <fmt>              Output format: text, json, csv (default: text)
    -best-offers <n>           Offers shown per line before "+N more"
    -workers <n>               Parallel quote workers
    -precision <n>             Decimal places in text/csv output
    -decimal-separator <sep>   "." or ","; "," switches CSV fields to ";"
    -currency <symbol>         Currency symbol for text output
    -verbose                   Show allocation lines and best offers
    -help                      Show this help message

ENVIRONMENT:
    RXPROCURE_LOG_LEVEL, RXPROCURE_LOG_DEVELOPMENT, RXPROCURE_WORKERS,
    RXPROCURE_BEST_OFFERS, RXPROCURE_MEMO_CAPACITY, RXPROCURE_DISPLAY_PRECISION,
    RXPROCURE_DECIMAL_SEPARATOR, RXPROCURE_CURRENCY_SYMBOL (a .env file is read too)

CSV FILE FORMATS:

products.csv:
    product_id,public_price,vat_rate_percent
    AMOXICILLIN_1G,100.00,10

offers.csv:
    product_id,supplier_id,unit_price,available_stock
    AMOXICILLIN_1G,WHOLESALE_A,80.00,5

requests.csv:
    product_id,quantity,target_price
    AMOXICILLIN_1G,8,85.00
    AMOXICILLIN_1G,20,

EXAMPLES:
    rxquote -scenario scenarios/pharmacy_basic -verbose
    rxquote -scenario scenarios/pharmacy_basic -format csv -output results/ -decimal-separator , -currency €
`)
}
