package csv

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_LoadProducts(t *testing.T) {
	path := writeFile(t, "products.csv", "product_id,public_price,vat_rate_percent\n"+
		"AMOXICILLIN_1G,100.00,10\n"+
		"PARACETAMOL_500,50,22\n")

	products, err := NewLoader().LoadProducts(path)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, entities.ProductID("AMOXICILLIN_1G"), products[0].ID)
	assert.True(t, products[1].VATRatePercent.Equal(entities.MustMoney("22")))
	assert.Empty(t, products[0].Offers)
}

func TestLoader_LoadProducts_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		contains string
		is       error
	}{
		{"empty file", "", "must have a header row", nil},
		{"unknown column", "product_id,public_price,vat_rate_percent,brand\nP1,1,1,X\n", "header mismatch", nil},
		{"bad price", "product_id,public_price,vat_rate_percent\nP1,abc,10\n", "invalid public_price: abc", apperror.ErrInvalidInput},
		{"zero price", "product_id,public_price,vat_rate_percent\nP1,0,10\n", "row 2", apperror.ErrInvalidPublicPrice},
		{"duplicate", "product_id,public_price,vat_rate_percent\nP1,1,10\nP1,2,10\n", "duplicate product_id", nil},
		{"short row", "product_id,public_price,vat_rate_percent\nP1,1\n", "expected 3 columns", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadProducts(writeFile(t, "products.csv", tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
			if tc.is != nil {
				assert.True(t, errors.Is(err, tc.is), "expected %v in chain, got %v", tc.is, err)
			}
		})
	}
}

func TestLoader_LoadOffers_KeepsFileOrder(t *testing.T) {
	path := writeFile(t, "offers.csv", "product_id,supplier_id,unit_price,available_stock\n"+
		"P1,B,90,10\n"+
		"P2,A,3.5,0\n"+
		"P1,A,80,5\n")

	offers, err := NewLoader().LoadOffers(path)
	require.NoError(t, err)

	require.Len(t, offers["P1"], 2)
	assert.Equal(t, entities.SupplierID("B"), offers["P1"][0].SupplierID)
	assert.Equal(t, entities.SupplierID("A"), offers["P1"][1].SupplierID)
	assert.Equal(t, entities.Quantity(0), offers["P2"][0].AvailableStock)
}

func TestLoader_LoadOffers_HeaderOnly(t *testing.T) {
	path := writeFile(t, "offers.csv", "product_id,supplier_id,unit_price,available_stock\n")

	offers, err := NewLoader().LoadOffers(path)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestLoader_LoadRequests_HeaderOnly(t *testing.T) {
	path := writeFile(t, "requests.csv", "product_id,quantity,target_price\n")

	requests, err := NewLoader().LoadRequests(path)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestLoader_ParseErrorKeepsCause(t *testing.T) {
	path := writeFile(t, "offers.csv", "product_id,supplier_id,unit_price,available_stock\nP1,A,1,many\n")

	_, err := NewLoader().LoadOffers(path)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Equal(t, "available_stock", appErr.Details["field"])

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestLoader_LoadOffers_RejectsNegativeStock(t *testing.T) {
	path := writeFile(t, "offers.csv", "product_id,supplier_id,unit_price,available_stock\nP1,A,1,-4\n")

	_, err := NewLoader().LoadOffers(path)
	assert.ErrorIs(t, err, apperror.ErrInvalidOffer)
}

func TestLoader_LoadRequests(t *testing.T) {
	path := writeFile(t, "requests.csv", "\ufeffproduct_id,quantity,target_price\n"+
		"P1,8,85\n"+
		"P2,0,\n")

	requests, err := NewLoader().LoadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, entities.Quantity(8), requests[0].Quantity)
	require.True(t, requests[0].TargetPrice.Valid)
	assert.True(t, requests[0].TargetPrice.Decimal.Equal(entities.MustMoney("85")))
	assert.False(t, requests[1].TargetPrice.Valid)
}

func TestLoader_LoadRequests_RejectsFractionalQuantity(t *testing.T) {
	path := writeFile(t, "requests.csv", "product_id,quantity,target_price\nP1,1.5,\n")

	_, err := NewLoader().LoadRequests(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid quantity")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadProducts(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open products file")
}
