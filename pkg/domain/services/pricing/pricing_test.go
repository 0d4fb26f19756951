package pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/rxprocure/pkg/domain/apperror"
	"github.com/vsinha/rxprocure/pkg/domain/entities"
)

func money(s string) entities.Money { return entities.MustMoney(s) }

func offer(supplier, price string, stock int64) entities.SupplierOffer {
	return entities.SupplierOffer{
		SupplierID:     entities.SupplierID(supplier),
		UnitPrice:      money(price),
		AvailableStock: entities.Quantity(stock),
	}
}

func assertMoney(t *testing.T, want string, got entities.Money) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "expected %s, got %s", want, got)
}

// scenarioOffers is the two-supplier product used by scenarios A to C.
// Offers are listed out of price order on purpose.
func scenarioOffers() []entities.SupplierOffer {
	return []entities.SupplierOffer{
		offer("WHOLESALE_B", "90", 10),
		offer("WHOLESALE_A", "80", 5),
	}
}

func TestRankOffers_SortsByPriceAndKeepsTieOrder(t *testing.T) {
	offers := []entities.SupplierOffer{
		offer("C", "12", 1),
		offer("A", "10", 1),
		offer("B", "12", 1),
		offer("D", "10", 1),
	}

	ranked := RankOffers(offers)

	var order []entities.SupplierID
	for _, o := range ranked {
		order = append(order, o.SupplierID)
	}
	assert.Equal(t, []entities.SupplierID{"A", "D", "C", "B"}, order)
	assert.Equal(t, entities.SupplierID("C"), offers[0].SupplierID, "input must not be reordered")
}

func TestRankOffers_Empty(t *testing.T) {
	assert.Empty(t, RankOffers(nil))
}

func TestAllocateCapacity_ScenarioA(t *testing.T) {
	result, err := AllocateCapacity(RankOffers(scenarioOffers()), 8, money("100"))
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)
	assertMoney(t, "80", result.Lines[0].UnitPrice)
	assert.Equal(t, entities.Quantity(5), result.Lines[0].UnitsTaken)
	assertMoney(t, "90", result.Lines[1].UnitPrice)
	assert.Equal(t, entities.Quantity(3), result.Lines[1].UnitsTaken)
	assert.Equal(t, entities.Quantity(0), result.UnmetQuantity)
	assertMoney(t, "670", result.TotalCost)
	require.True(t, result.AverageUnitPrice.Valid)
	assertMoney(t, "83.75", result.AverageUnitPrice.Decimal)
	assert.Equal(t, entities.CoverageFull, result.Coverage())
}

func TestAllocateCapacity_ScenarioB(t *testing.T) {
	result, err := AllocateCapacity(RankOffers(scenarioOffers()), 20, money("100"))
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)
	assert.Equal(t, entities.Quantity(5), result.Lines[0].UnitsTaken)
	assert.Equal(t, entities.Quantity(10), result.Lines[1].UnitsTaken)
	assert.Equal(t, entities.Quantity(5), result.UnmetQuantity)
	assertMoney(t, "100", result.UnmetUnitPrice)
	assertMoney(t, "1800", result.TotalCost)
	assertMoney(t, "90", result.AverageUnitPrice.Decimal)
	assert.Equal(t, entities.CoveragePartial, result.Coverage())
}

func TestScenarioC_ExceededButPriced(t *testing.T) {
	offers := scenarioOffers()

	verdict := CheckStock(offers, 16)
	assert.Equal(t, entities.Quantity(15), verdict.TotalAvailableStock)
	assert.True(t, verdict.Exceeded)

	result, err := AllocateCapacity(RankOffers(offers), 16, money("100"))
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(1), result.UnmetQuantity)
	assertMoney(t, "1400", result.TotalCost)
}

func TestAllocateCapacity_ZeroQuantity(t *testing.T) {
	result, err := AllocateCapacity(RankOffers(scenarioOffers()), 0, money("100"))
	require.NoError(t, err)

	assert.Empty(t, result.Lines)
	assert.Equal(t, entities.Quantity(0), result.UnmetQuantity)
	assert.True(t, result.TotalCost.IsZero())
	assert.False(t, result.AverageUnitPrice.Valid)
	assert.False(t, CheckStock(scenarioOffers(), 0).Exceeded)
	assert.Equal(t, entities.CoverageNone, result.Coverage())
}

func TestAllocateCapacity_NegativeQuantity(t *testing.T) {
	_, err := AllocateCapacity(RankOffers(scenarioOffers()), -1, money("100"))
	assert.ErrorIs(t, err, apperror.ErrInvalidQuantity)
}

func TestAllocateCapacity_NoOffers(t *testing.T) {
	result, err := AllocateCapacity(nil, 4, money("12.5"))
	require.NoError(t, err)

	assert.Empty(t, result.Lines)
	assert.Equal(t, entities.Quantity(4), result.UnmetQuantity)
	assertMoney(t, "50", result.TotalCost)
	assertMoney(t, "12.5", result.AverageUnitPrice.Decimal)
	assert.Equal(t, entities.CoverageNoSupplier, result.Coverage())
}

func TestAllocateCapacity_SkipsEmptyStock(t *testing.T) {
	ranked := RankOffers([]entities.SupplierOffer{
		offer("EMPTY", "1", 0),
		offer("FULL", "2", 10),
	})

	result, err := AllocateCapacity(ranked, 3, money("5"))
	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, entities.SupplierID("FULL"), result.Lines[0].Offer.SupplierID)
}

func TestAllocateCapacity_StopsWhenSatisfied(t *testing.T) {
	ranked := RankOffers([]entities.SupplierOffer{
		offer("A", "1", 10),
		offer("B", "2", 10),
	})

	result, err := AllocateCapacity(ranked, 10, money("5"))
	require.NoError(t, err)
	assert.Len(t, result.Lines, 1, "offers after the request is filled must not appear")
}

func TestAllocateCapacity_AverageKeepsPrecision(t *testing.T) {
	ranked := RankOffers([]entities.SupplierOffer{offer("A", "1", 1), offer("B", "2", 2)})

	result, err := AllocateCapacity(ranked, 3, money("5"))
	require.NoError(t, err)

	// 5 / 3 must not be rounded to two places inside the engine
	assert.True(t, result.AverageUnitPrice.Decimal.GreaterThan(money("1.6666")))
	assert.True(t, result.AverageUnitPrice.Decimal.LessThan(money("1.6667")))
}

func randomOffers(rng *rand.Rand, n int) []entities.SupplierOffer {
	offers := make([]entities.SupplierOffer, n)
	for i := range offers {
		offers[i] = entities.SupplierOffer{
			UnitPrice:      decimal.New(int64(rng.Intn(2000)), -2),
			AvailableStock: entities.Quantity(rng.Intn(6)),
		}
	}
	return offers
}

func TestAllocateCapacity_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		offers := randomOffers(rng, rng.Intn(5))
		requested := entities.Quantity(rng.Intn(30))

		result, err := AllocateCapacity(RankOffers(offers), requested, money("15"))
		require.NoError(t, err)

		assert.Equal(t, requested, result.AllocatedQuantity()+result.UnmetQuantity)
		for _, line := range result.Lines {
			assert.Positive(t, int64(line.UnitsTaken))
		}
	}
}

// bruteForceMinCost tries every way of taking min(requested, total stock)
// units from the offers and returns the cheapest total.
func bruteForceMinCost(offers []entities.SupplierOffer, requested entities.Quantity, publicPrice entities.Money) entities.Money {
	filled := min(requested, TotalAvailableStock(offers))
	unmet := publicPrice.Mul(decimal.NewFromInt(int64(requested - filled)))

	var best *entities.Money
	var walk func(i int, left entities.Quantity, cost entities.Money)
	walk = func(i int, left entities.Quantity, cost entities.Money) {
		if i == len(offers) {
			if left == 0 && (best == nil || cost.LessThan(*best)) {
				c := cost
				best = &c
			}
			return
		}
		for u := entities.Quantity(0); u <= min(left, offers[i].AvailableStock); u++ {
			walk(i+1, left-u, cost.Add(offers[i].UnitPrice.Mul(decimal.NewFromInt(int64(u)))))
		}
	}
	walk(0, filled, decimal.Zero)

	return best.Add(unmet)
}

func TestAllocateCapacity_CostMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		offers := randomOffers(rng, 1+rng.Intn(4))
		requested := entities.Quantity(rng.Intn(16))
		publicPrice := decimal.New(int64(500+rng.Intn(2000)), -2)

		result, err := AllocateCapacity(RankOffers(offers), requested, publicPrice)
		require.NoError(t, err)

		best := bruteForceMinCost(offers, requested, publicPrice)
		assert.Truef(t, result.TotalCost.Equal(best),
			"greedy cost %s differs from optimum %s for %v q=%d", result.TotalCost, best, offers, requested)
	}
}

func TestAllocateCapacity_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 100; i++ {
		ranked := RankOffers(randomOffers(rng, rng.Intn(5)))
		publicPrice := money("25")

		prev, err := AllocateCapacity(ranked, 0, publicPrice)
		require.NoError(t, err)

		for q := entities.Quantity(1); q <= 25; q++ {
			next, err := AllocateCapacity(ranked, q, publicPrice)
			require.NoError(t, err)

			assert.True(t, next.TotalCost.GreaterThanOrEqual(prev.TotalCost))
			assert.GreaterOrEqual(t, int64(next.UnmetQuantity), int64(prev.UnmetQuantity))
			assert.LessOrEqual(t, int64(next.UnmetQuantity-prev.UnmetQuantity), int64(1))
			prev = next
		}
	}
}

func TestCheckStock_IgnoresPrices(t *testing.T) {
	cheap := []entities.SupplierOffer{offer("A", "1", 4), offer("B", "2", 6)}
	dear := []entities.SupplierOffer{offer("A", "1000", 4), offer("B", "0", 6)}

	for q := entities.Quantity(0); q <= 12; q++ {
		assert.Equal(t, CheckStock(cheap, q), CheckStock(dear, q))
		assert.Equal(t, q > 10, CheckStock(cheap, q).Exceeded)
	}
}

func TestCheckStock_NoOffers(t *testing.T) {
	verdict := CheckStock(nil, 1)
	assert.Equal(t, entities.Quantity(0), verdict.TotalAvailableStock)
	assert.True(t, verdict.Exceeded)
	assert.False(t, CheckStock(nil, 0).Exceeded)
}
