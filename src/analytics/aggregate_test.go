package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/username/stonefolio/src/models"
)

func strp(s string) *string { return &s }
func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// row builds a minimal canonical row for aggregation tests.
func row(account, family, sku, color string, year, qty int, total float64) models.CanonicalRow {
	season := models.SeasonSpring
	month := 4
	quarter := 2
	r := models.CanonicalRow{
		Quantity:   qty,
		TotalPrice: fp(total),
		Year:       ip(year),
		Month:      &month,
		Quarter:    &quarter,
		Season:     &season,
	}
	if account != "" {
		r.AccountCode = strp(account)
	}
	if family != "" {
		r.ProductFamily = strp(family)
	}
	if sku != "" {
		r.ProductSKU = strp(sku)
	}
	if color != "" {
		r.StoneColor = strp(color)
	}
	return r
}

func TestFilterByAccount_CaseInsensitiveTrimmed(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		row("ABC-001", "Granite", "G1", "Black", 2022, 1, 100),
		row("XYZ-002", "Granite", "G1", "Black", 2022, 1, 100),
	}

	filtered := FilterByAccount(ds, "  abc-001  ")
	require.Len(t, filtered, 1)
	require.Equal(t, "ABC-001", *filtered[0].AccountCode)
}

func TestYearlyTrend(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		row("A", "Granite", "G1", "Black", 2022, 10, 1000),
		row("A", "Granite", "G1", "Black", 2022, 5, 500),
		row("A", "Granite", "G1", "Black", 2020, 2, 300),
	}

	trend := YearlyTrend(ds)
	require.Len(t, trend, 2)

	// Ascending by year.
	require.Equal(t, 2020, trend[0].Year)
	require.Equal(t, 2022, trend[1].Year)

	require.Equal(t, 2, trend[1].OrderCount)
	require.Equal(t, 15, trend[1].QuantitySum)
	require.Equal(t, 1500.0, trend[1].TotalPriceSum)
	require.Equal(t, 750.0, trend[1].AvgTotalPrice)
}

func TestSeasonalPattern_PercentageOfFilteredTotal(t *testing.T) {
	t.Parallel()

	spring := row("A", "", "", "", 2022, 1, 100)
	winter := row("A", "", "", "", 2022, 2, 200)
	winterSeason := models.SeasonWinter
	winter.Season = &winterSeason

	ds := models.NormalizedDataset{spring, spring, winter}
	pattern := SeasonalPattern(ds)
	require.Len(t, pattern, 2)

	// Calendar order: Winter before Spring.
	require.Equal(t, models.SeasonWinter, pattern[0].Season)
	require.Equal(t, 33.33, pattern[0].Percentage)
	require.Equal(t, models.SeasonSpring, pattern[1].Season)
	require.Equal(t, 66.67, pattern[1].Percentage)
}

func TestGroupBy_RankingAndTruncation(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		row("A", "Granite", "", "", 2022, 1, 100),
		row("A", "Marble", "", "", 2022, 1, 900),
		row("A", "Marble", "", "", 2022, 1, 600),
		row("A", "Slate", "", "", 2022, 1, 400),
	}

	groups := GroupBy(ds, GroupFields[models.FieldProductFamily], 2)
	require.Len(t, groups, 2)
	require.Equal(t, "Marble", groups[0].Key)
	require.Equal(t, 1500.0, groups[0].TotalPriceSum)
	require.Equal(t, "Slate", groups[1].Key)

	// Truncation happens after full aggregation: Marble's sum includes both
	// rows even though the result is capped at two groups.
	require.Equal(t, 2, groups[0].OrderCount)
}

func TestGroupBy_NullKeysExcludedAndConservation(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		row("A", "Granite", "", "", 2022, 3, 100),
		row("A", "", "", "", 2022, 7, 100), // null family, excluded
		row("A", "Marble", "", "", 2022, 5, 100),
	}

	groups := GroupBy(ds, GroupFields[models.FieldProductFamily], 10)
	require.Len(t, groups, 2)

	var qtySum, rowQty int
	for _, g := range groups {
		qtySum += g.QuantitySum
	}
	for _, r := range ds {
		if r.ProductFamily != nil {
			rowQty += r.Quantity
		}
	}
	require.Equal(t, rowQty, qtySum)
}

func TestGroupBy_AvgUnitPrice(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		row("A", "Granite", "", "", 2022, 4, 1000),
		row("A", "Slate", "", "", 2022, 0, 500), // zero quantity group
	}

	groups := GroupBy(ds, GroupFields[models.FieldProductFamily], 10)
	require.Len(t, groups, 2)
	require.Equal(t, "Granite", groups[0].Key)
	require.Equal(t, 250.0, groups[0].AvgUnitPrice)
	require.Equal(t, "Slate", groups[1].Key)
	require.Equal(t, 0.0, groups[1].AvgUnitPrice)
}

func TestAvgUnitPrice_NeverDividesByZero(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, AvgUnitPrice(1000, 0))
	require.Equal(t, 0.0, AvgUnitPrice(0, 0))
	require.Equal(t, 2.5, AvgUnitPrice(10, 4))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	ds := models.NormalizedDataset{
		row("ABC", "Granite", "G1", "", 2022, 10, 1000),
		row("ABC", "Granite", "G2", "", 2020, 4, 600),
		row("ABC", "Marble", "G1", "", 2023, 6, 400),
	}

	s := Summarize(ds, "ABC")
	require.NotNil(t, s)
	require.Equal(t, "ABC", s.AccountCode)
	require.Equal(t, 3, s.OrderCount)
	require.Equal(t, 20, s.QuantitySum)
	require.Equal(t, 2000.0, s.TotalPriceSum)
	require.Equal(t, 2020, s.FirstOrderYear)
	require.Equal(t, 2023, s.LastOrderYear)
	require.Equal(t, 2, s.DistinctSKUs)
	require.Len(t, s.TopSKUs, 2)
	require.Equal(t, "G1", s.TopSKUs[0].ProductSKU)
}

func TestSummarize_EmptyDatasetIsNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, Summarize(models.NormalizedDataset{}, "ABC"))
}

func TestDimensionAnalysis_RequiresAllThreeDimensions(t *testing.T) {
	t.Parallel()

	full := row("A", "", "", "", 2022, 5, 100)
	full.Length, full.Width, full.Height = fp(60), fp(40), fp(2)

	partial := row("A", "", "", "", 2022, 9, 100)
	partial.Length, partial.Width = fp(60), fp(40) // height missing

	other := row("A", "", "", "", 2022, 3, 100)
	other.Length, other.Width, other.Height = fp(30), fp(30), fp(1)

	dims := DimensionAnalysis(models.NormalizedDataset{full, partial, other, full}, 10)
	require.Len(t, dims, 2)

	// Ranked by quantity sum descending.
	require.Equal(t, 60.0, dims[0].Length)
	require.Equal(t, 10, dims[0].QuantitySum)
	require.Equal(t, 2, dims[0].OrderCount)
	require.Equal(t, 3, dims[1].QuantitySum)
}

func TestValidFieldNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		models.FieldAccountCode,
		models.FieldProductFamily,
		models.FieldProductSKU,
		models.FieldStoneColor,
	}, ValidGroupFieldNames())

	require.Equal(t, []string{
		models.FieldAccountCode,
		models.FieldProductFamily,
		models.FieldProductSKU,
	}, ValidTrendFilterFieldNames())
}
