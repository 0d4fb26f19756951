package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

var (
	productsHeader = []string{"product_id", "public_price", "vat_rate_percent"}
	offersHeader   = []string{"product_id", "supplier_id", "unit_price", "available_stock"}
	requestsHeader = []string{"product_id", "quantity", "target_price"}
)

// Loader handles loading catalog data and quote requests from CSV files.
// Headers must match exactly; unknown or missing columns are rejected.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads products (without offers) from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readRecords(filename, "products", productsHeader)
	if err != nil {
		return nil, err
	}

	products := make([]*entities.Product, 0, len(records))
	seen := make(map[entities.ProductID]bool, len(records))
	for i, record := range records {
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		if seen[product.ID] {
			return nil, fmt.Errorf("products CSV row %d: duplicate product_id %s", i+2, product.ID)
		}
		seen[product.ID] = true
		products = append(products, product)
	}

	return products, nil
}

// LoadOffers loads supplier offers grouped by product id. Within a product,
// offers keep file order.
func (l *Loader) LoadOffers(filename string) (map[entities.ProductID][]entities.SupplierOffer, error) {
	records, err := readRecords(filename, "offers", offersHeader)
	if err != nil {
		return nil, err
	}

	offers := make(map[entities.ProductID][]entities.SupplierOffer)
	for i, record := range records {
		productID, offer, err := parseOffer(record)
		if err != nil {
			return nil, fmt.Errorf("offers CSV row %d: %w", i+2, err)
		}
		offers[productID] = append(offers[productID], offer)
	}

	return offers, nil
}

// LoadRequests loads quote requests from a CSV file. An empty target_price
// means no target.
func (l *Loader) LoadRequests(filename string) ([]entities.QuoteRequest, error) {
	records, err := readRecords(filename, "requests", requestsHeader)
	if err != nil {
		return nil, err
	}

	requests := make([]entities.QuoteRequest, 0, len(records))
	for i, record := range records {
		request, err := parseRequest(record)
		if err != nil {
			return nil, fmt.Errorf("requests CSV row %d: %w", i+2, err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// readRecords opens filename, validates the header and returns the data rows
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	// A header without rows is an empty file, e.g. a catalog with no offers yet
	if len(records) == 0 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return rows, nil
}

// validateHeader checks if the header matches expected columns
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		// Excel exports often start with a UTF-8 BOM
		col = strings.TrimPrefix(col, "\ufeff")
		if strings.TrimSpace(strings.ToLower(col)) != expected[i] {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	id := entities.ProductID(strings.TrimSpace(record[0]))

	publicPrice, err := parseMoney("public_price", record[1])
	if err != nil {
		return nil, err
	}

	vatRate, err := parseMoney("vat_rate_percent", record[2])
	if err != nil {
		return nil, err
	}

	return entities.NewProduct(id, publicPrice, vatRate, nil)
}

func parseOffer(record []string) (entities.ProductID, entities.SupplierOffer, error) {
	productID := entities.ProductID(strings.TrimSpace(record[0]))
	if productID == "" {
		return "", entities.SupplierOffer{}, fmt.Errorf("product_id cannot be empty")
	}

	supplierID := entities.SupplierID(strings.TrimSpace(record[1]))

	unitPrice, err := parseMoney("unit_price", record[2])
	if err != nil {
		return "", entities.SupplierOffer{}, err
	}

	stock, err := parseQuantity("available_stock", record[3])
	if err != nil {
		return "", entities.SupplierOffer{}, err
	}

	offer, err := entities.NewSupplierOffer(supplierID, unitPrice, stock)
	if err != nil {
		return "", entities.SupplierOffer{}, err
	}
	return productID, offer, nil
}

func parseRequest(record []string) (entities.QuoteRequest, error) {
	productID := entities.ProductID(strings.TrimSpace(record[0]))
	if productID == "" {
		return entities.QuoteRequest{}, fmt.Errorf("product_id cannot be empty")
	}

	quantity, err := parseQuantity("quantity", record[1])
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	request := entities.QuoteRequest{ProductID: productID, Quantity: quantity}

	if target := strings.TrimSpace(record[2]); target != "" {
		price, err := parseMoney("target_price", target)
		if err != nil {
			return entities.QuoteRequest{}, err
		}
		request.TargetPrice = decimal.NewNullDecimal(price)
	}

	return request, nil
}

func parseMoney(field, value string) (entities.Money, error) {
	d, err := entities.NewMoneyFromString(strings.TrimSpace(value))
	if err != nil {
		return entities.Zero(), apperror.NewInvalidInput(fmt.Sprintf("invalid %s: %s", field, value)).
			WithDetail("field", field).
			WithCause(err)
	}
	return d, nil
}

// parseQuantity accepts integers only; negative values are left to the
// domain validation so the proper error code is reported
func parseQuantity(field, value string) (entities.Quantity, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, apperror.NewInvalidInput(fmt.Sprintf("invalid %s: %s", field, value)).
			WithDetail("field", field).
			WithCause(err)
	}
	return entities.Quantity(n), nil
}
