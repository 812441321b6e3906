package analytics

import (
	"sort"
	"strings"

	"github.com/username/stonefolio/src/models"
	"github.com/username/stonefolio/src/utils"
)

// GroupFields is the closed set of grouping-field names accepted by the
// top-items summary, mapped to their row accessors. Names are matched
// verbatim (case-sensitive); nothing is ever resolved dynamically against the
// remote schema.
var GroupFields = map[string]func(models.CanonicalRow) *string{
	models.FieldAccountCode:   func(r models.CanonicalRow) *string { return r.AccountCode },
	models.FieldProductFamily: func(r models.CanonicalRow) *string { return r.ProductFamily },
	models.FieldProductSKU:    func(r models.CanonicalRow) *string { return r.ProductSKU },
	models.FieldStoneColor:    func(r models.CanonicalRow) *string { return r.StoneColor },
}

// TrendFilterFields is the closed set of filter-field names accepted by the
// yearly trend.
var TrendFilterFields = map[string]func(models.CanonicalRow) *string{
	models.FieldAccountCode:   func(r models.CanonicalRow) *string { return r.AccountCode },
	models.FieldProductFamily: func(r models.CanonicalRow) *string { return r.ProductFamily },
	models.FieldProductSKU:    func(r models.CanonicalRow) *string { return r.ProductSKU },
}

// ValidGroupFieldNames returns the accepted grouping-field names, sorted, for
// error messages.
func ValidGroupFieldNames() []string {
	return sortedKeys(GroupFields)
}

// ValidTrendFilterFieldNames returns the accepted trend-filter names, sorted.
func ValidTrendFilterFieldNames() []string {
	return sortedKeys(TrendFilterFields)
}

func sortedKeys(m map[string]func(models.CanonicalRow) *string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matches reports whether a stored field value equals the query value under
// the query-time rule: case-insensitive, whitespace-trimmed equality.
func matches(stored *string, query string) bool {
	if stored == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*stored), strings.TrimSpace(query))
}

// FilterByAccount narrows the dataset to one account code.
func FilterByAccount(ds models.NormalizedDataset, accountCode string) models.NormalizedDataset {
	return FilterByField(ds, func(r models.CanonicalRow) *string { return r.AccountCode }, accountCode)
}

// FilterByField narrows the dataset to rows whose field matches value.
func FilterByField(ds models.NormalizedDataset, field func(models.CanonicalRow) *string, value string) models.NormalizedDataset {
	out := make(models.NormalizedDataset, 0, len(ds))
	for _, row := range ds {
		if matches(field(row), value) {
			out = append(out, row)
		}
	}
	return out
}

// YearlyTrend groups the dataset by year, ascending. Rows reaching this point
// always have a non-null year.
func YearlyTrend(ds models.NormalizedDataset) []models.YearlySummary {
	type acc struct {
		count int
		qty   int
		total float64
	}
	byYear := make(map[int]*acc)
	for _, row := range ds {
		if row.Year == nil {
			continue
		}
		a, ok := byYear[*row.Year]
		if !ok {
			a = &acc{}
			byYear[*row.Year] = a
		}
		a.count++
		a.qty += row.Quantity
		a.total += floatOrZero(row.TotalPrice)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]models.YearlySummary, 0, len(years))
	for _, y := range years {
		a := byYear[y]
		out = append(out, models.YearlySummary{
			Year:          y,
			OrderCount:    a.count,
			QuantitySum:   a.qty,
			TotalPriceSum: utils.RoundFloat(a.total, 2),
			AvgTotalPrice: utils.RoundFloat(a.total/float64(a.count), 2),
		})
	}
	return out
}

// seasonOrder is the fixed calendar presentation order of the seasonal
// pattern result.
var seasonOrder = []string{models.SeasonWinter, models.SeasonSpring, models.SeasonSummer, models.SeasonFall}

// SeasonalPattern groups the dataset by season. The percentage is the share
// of the filtered dataset's row count, rounded to two decimals.
func SeasonalPattern(ds models.NormalizedDataset) []models.SeasonSummary {
	type acc struct {
		count int
		qty   int
		total float64
	}
	bySeason := make(map[string]*acc)
	for _, row := range ds {
		if row.Season == nil {
			continue
		}
		a, ok := bySeason[*row.Season]
		if !ok {
			a = &acc{}
			bySeason[*row.Season] = a
		}
		a.count++
		a.qty += row.Quantity
		a.total += floatOrZero(row.TotalPrice)
	}

	total := len(ds)
	out := make([]models.SeasonSummary, 0, len(bySeason))
	for _, season := range seasonOrder {
		a, ok := bySeason[season]
		if !ok {
			continue
		}
		out = append(out, models.SeasonSummary{
			Season:        season,
			OrderCount:    a.count,
			QuantitySum:   a.qty,
			TotalPriceSum: utils.RoundFloat(a.total, 2),
			Percentage:    percentage(a.count, total),
		})
	}
	return out
}

// GroupBy aggregates the dataset by one identity field and ranks the groups
// by total-price sum descending, truncating to at most limit groups after
// the full aggregation. Rows with a null group key are excluded.
func GroupBy(ds models.NormalizedDataset, field func(models.CanonicalRow) *string, limit int) []models.GroupSummary {
	type acc struct {
		count int
		qty   int
		total float64
	}
	byKey := make(map[string]*acc)
	for _, row := range ds {
		key := field(row)
		if key == nil {
			continue
		}
		a, ok := byKey[*key]
		if !ok {
			a = &acc{}
			byKey[*key] = a
		}
		a.count++
		a.qty += row.Quantity
		a.total += floatOrZero(row.TotalPrice)
	}

	total := len(ds)
	out := make([]models.GroupSummary, 0, len(byKey))
	for key, a := range byKey {
		out = append(out, models.GroupSummary{
			Key:           key,
			OrderCount:    a.count,
			QuantitySum:   a.qty,
			TotalPriceSum: utils.RoundFloat(a.total, 2),
			Percentage:    percentage(a.count, total),
			AvgUnitPrice:  AvgUnitPrice(a.total, a.qty),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPriceSum != out[j].TotalPriceSum {
			return out[i].TotalPriceSum > out[j].TotalPriceSum
		}
		return out[i].Key < out[j].Key
	})
	return out[:utils.MinInt(limit, len(out))]
}

// Summarize builds the single aggregate record for a pre-filtered account
// dataset, with a nested top-3 SKU list. Returns nil when the dataset is
// empty.
func Summarize(ds models.NormalizedDataset, accountCode string) *models.AccountSummary {
	if len(ds) == 0 {
		return nil
	}

	var qty int
	var total float64
	firstYear, lastYear := 0, 0
	skuSeen := make(map[string]struct{})
	for _, row := range ds {
		qty += row.Quantity
		total += floatOrZero(row.TotalPrice)
		if row.Year != nil {
			if firstYear == 0 || *row.Year < firstYear {
				firstYear = *row.Year
			}
			if *row.Year > lastYear {
				lastYear = *row.Year
			}
		}
		if row.ProductSKU != nil {
			skuSeen[*row.ProductSKU] = struct{}{}
		}
	}

	count := len(ds)
	topSKUs := GroupBy(ds, func(r models.CanonicalRow) *string { return r.ProductSKU }, 3)
	nested := make([]models.SKUSummary, 0, len(topSKUs))
	for _, g := range topSKUs {
		nested = append(nested, models.SKUSummary{
			ProductSKU:    g.Key,
			OrderCount:    g.OrderCount,
			QuantitySum:   g.QuantitySum,
			TotalPriceSum: g.TotalPriceSum,
		})
	}

	return &models.AccountSummary{
		AccountCode:    accountCode,
		OrderCount:     count,
		QuantitySum:    qty,
		TotalPriceSum:  utils.RoundFloat(total, 2),
		AvgTotalPrice:  utils.RoundFloat(total/float64(count), 2),
		AvgQuantity:    utils.RoundFloat(float64(qty)/float64(count), 2),
		DistinctSKUs:   len(skuSeen),
		FirstOrderYear: firstYear,
		LastOrderYear:  lastYear,
		TopSKUs:        nested,
	}
}

// DimensionAnalysis groups by the (length, width, height) triple. A group
// exists only when all three dimensions are non-null on the row; partial
// rows are excluded from this grouping entirely. Groups are ranked by
// quantity sum descending and truncated after aggregation.
func DimensionAnalysis(ds models.NormalizedDataset, limit int) []models.DimensionSummary {
	type key struct{ l, w, h float64 }
	type acc struct {
		count int
		qty   int
		total float64
	}
	byDim := make(map[key]*acc)
	for _, row := range ds {
		if row.Length == nil || row.Width == nil || row.Height == nil {
			continue
		}
		k := key{*row.Length, *row.Width, *row.Height}
		a, ok := byDim[k]
		if !ok {
			a = &acc{}
			byDim[k] = a
		}
		a.count++
		a.qty += row.Quantity
		a.total += floatOrZero(row.TotalPrice)
	}

	out := make([]models.DimensionSummary, 0, len(byDim))
	for k, a := range byDim {
		out = append(out, models.DimensionSummary{
			Length:        k.l,
			Width:         k.w,
			Height:        k.h,
			OrderCount:    a.count,
			QuantitySum:   a.qty,
			TotalPriceSum: utils.RoundFloat(a.total, 2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QuantitySum != out[j].QuantitySum {
			return out[i].QuantitySum > out[j].QuantitySum
		}
		if out[i].Length != out[j].Length {
			return out[i].Length < out[j].Length
		}
		if out[i].Width != out[j].Width {
			return out[i].Width < out[j].Width
		}
		return out[i].Height < out[j].Height
	})
	return out[:utils.MinInt(limit, len(out))]
}

// AvgUnitPrice is total price over quantity, 0 when the quantity sum is not
// positive. It never divides by zero.
func AvgUnitPrice(totalPriceSum float64, quantitySum int) float64 {
	if quantitySum <= 0 {
		return 0
	}
	return utils.RoundFloat(totalPriceSum/float64(quantitySum), 2)
}

// percentage is the share of count in total, rounded to two decimals. The
// denominator is always the filtered dataset's row count.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return utils.RoundFloat(float64(count)/float64(total)*100, 2)
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
