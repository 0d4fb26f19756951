package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/infrastructure/config"
	"github.com/vsinha/rxprocure/pkg/interfaces/cli/commands"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Command line flags, defaulting to the environment configuration
	var (
		scenarioDir      = flag.String("scenario", "", "Path to scenario directory containing CSV files")
		productsFile     = flag.String("products", "", "Path to products CSV file")
		offersFile       = flag.String("offers", "", "Path to supplier offers CSV file")
		requestsFile     = flag.String("requests", "", "Path to quote requests CSV file")
		outputDir        = flag.String("output", "", "Output directory for results (optional)")
		format           = flag.String("format", "text", "Output format: text, json, csv")
		verbose          = flag.Bool("verbose", false, "Show allocation lines and best offers")
		bestOffers       = flag.Int("best-offers", appConfig.BestOffers, "Offers shown per line")
		workers          = flag.Int("workers", appConfig.Workers, "Parallel quote workers")
		precision        = flag.Int("precision", int(appConfig.DisplayPrecision), "Decimal places in output")
		decimalSeparator = flag.String("decimal-separator", appConfig.DecimalSeparator, "Decimal separator: . or ,")
		currency         = flag.String("currency", appConfig.CurrencySymbol, "Currency symbol for text output")
		help             = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	appConfig.BestOffers = *bestOffers
	appConfig.Workers = *workers
	appConfig.DisplayPrecision = int32(*precision)
	appConfig.DecimalSeparator = *decimalSeparator
	appConfig.CurrencySymbol = *currency
	if err := appConfig.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg := commands.Config{
		ScenarioDir:      *scenarioDir,
		ProductsFile:     *productsFile,
		OffersFile:       *offersFile,
		RequestsFile:     *requestsFile,
		OutputDir:        *outputDir,
		Format:           *format,
		Verbose:          *verbose,
		BestOffers:       appConfig.BestOffers,
		Workers:          appConfig.Workers,
		MemoCapacity:     appConfig.MemoCapacity,
		Precision:        appConfig.DisplayPrecision,
		DecimalSeparator: appConfig.DecimalSeparator,
		CurrencySymbol:   appConfig.CurrencySymbol,
		LogLevel:         appConfig.LogLevel,
		LogDevelopment:   appConfig.LogDevelopment,
		Help:             *help,
	}

	cmd := commands.NewQuoteCommand(cfg)
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if apperror.IsValidation(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
