package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/username/stonefolio/src/models"
)

func historyRow(account string, year, quarter, month, qty int, total float64, sku string) models.CanonicalRow {
	display := fmt.Sprintf("15/%02d/%d", month, year)
	r := models.CanonicalRow{
		AccountCode: strp(account),
		ProductSKU:  strp(sku),
		Quantity:    qty,
		TotalPrice:  fp(total),
		Year:        ip(year),
		Quarter:     ip(quarter),
		Month:       ip(month),
		DisplayDate: &display,
	}
	return r
}

func TestBuildCustomerHistory_SinglePassTotals(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		historyRow("ABC", 2023, 1, 2, 5, 500, "G1"),
		historyRow("ABC", 2023, 1, 3, 3, 300, "G2"), // same quarter, different month
		historyRow("ABC", 2022, 4, 11, 2, 200, "G1"),
		historyRow("OTHER", 2023, 1, 2, 9, 900, "G9"), // different account, excluded
	}

	h := BuildCustomerHistory(ds, "abc", 3, 2024)
	require.Equal(t, "abc", h.AccountCode)
	require.Equal(t, 3, h.OrderCount)
	require.Equal(t, 10, h.QuantitySum)
	require.Equal(t, 1000.0, h.ValueSum)

	y2023 := h.Years["2023"]
	require.NotNil(t, y2023)
	require.Equal(t, 2, y2023.OrderCount)
	require.Equal(t, 8, y2023.QuantitySum)
	require.Equal(t, 800.0, y2023.ValueSum)

	// Quarter totals accumulate across months of the quarter.
	q1 := y2023.Quarters["1"]
	require.NotNil(t, q1)
	require.Equal(t, 2, q1.OrderCount)
	require.Equal(t, 800.0, q1.ValueSum)
	require.Len(t, q1.Months, 2)

	feb := q1.Months["2"]
	require.Equal(t, 1, feb.OrderCount)
	require.Len(t, feb.Lines, 1)
	require.Equal(t, "G1", *feb.Lines[0].ProductSKU)
}

func TestBuildCustomerHistory_YearsBackWindow(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		historyRow("ABC", 2024, 1, 1, 1, 100, "G1"),
		historyRow("ABC", 2021, 1, 1, 1, 100, "G1"),
		historyRow("ABC", 2020, 1, 1, 1, 100, "G1"), // older than cutoff
	}

	h := BuildCustomerHistory(ds, "ABC", 3, 2024)
	require.Equal(t, 2, h.OrderCount)
	require.Contains(t, h.Years, "2024")
	require.Contains(t, h.Years, "2021")
	require.NotContains(t, h.Years, "2020")
}

func TestBuildCustomerHistory_EmptyWindow(t *testing.T) {
	t.Parallel()

	h := BuildCustomerHistory(models.NormalizedDataset{}, "ABC", 3, 2024)
	require.Equal(t, 0, h.OrderCount)
	require.Empty(t, h.Years)
}

func TestBuildCustomerHistory_LeafLineOrder(t *testing.T) {
	t.Parallel()

	first := historyRow("ABC", 2023, 2, 5, 1, 100, "G1")
	second := historyRow("ABC", 2023, 2, 5, 2, 200, "G2")
	ds := models.NormalizedDataset{first, second}

	h := BuildCustomerHistory(ds, "ABC", 3, 2024)
	lines := h.Years["2023"].Quarters["2"].Months["5"].Lines
	require.Len(t, lines, 2)
	require.Equal(t, "G1", *lines[0].ProductSKU)
	require.Equal(t, "G2", *lines[1].ProductSKU)
}
