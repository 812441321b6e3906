package analytics

import (
	"github.com/username/stonefolio/src/models"
	"github.com/username/stonefolio/src/utils"
)

// BuildCustomerHistory folds the dataset into the year → quarter → month tree
// for one account, keeping only rows with year >= currentYear - yearsBack.
// One pass: every matching row bumps the totals of its year, quarter and
// month bucket plus the tree root; nothing is re-aggregated afterwards, the
// final walk only rounds the accumulated value sums. Month buckets retain the
// per-row detail lines in dataset order.
func BuildCustomerHistory(ds models.NormalizedDataset, accountCode string, yearsBack, currentYear int) *models.CustomerHistory {
	h := models.NewCustomerHistory(accountCode, yearsBack)
	cutoff := currentYear - yearsBack

	for _, row := range ds {
		if !matches(row.AccountCode, accountCode) {
			continue
		}
		if row.Year == nil || *row.Year < cutoff {
			continue
		}

		value := floatOrZero(row.TotalPrice)

		h.OrderCount++
		h.QuantitySum += row.Quantity
		h.ValueSum += value

		yb := h.EnsureYear(*row.Year)
		yb.OrderCount++
		yb.QuantitySum += row.Quantity
		yb.ValueSum += value

		qb := yb.EnsureQuarter(*row.Quarter)
		qb.OrderCount++
		qb.QuantitySum += row.Quantity
		qb.ValueSum += value

		mb := qb.EnsureMonth(*row.Month)
		mb.OrderCount++
		mb.QuantitySum += row.Quantity
		mb.ValueSum += value
		mb.Lines = append(mb.Lines, historyLine(row))
	}

	roundHistory(h)
	return h
}

func historyLine(row models.CanonicalRow) models.HistoryLine {
	return models.HistoryLine{
		Date:          row.DisplayDate,
		ProductSKU:    row.ProductSKU,
		ProductFamily: row.ProductFamily,
		StoneColor:    row.StoneColor,
		Segment:       row.Segment,
		Length:        row.Length,
		Width:         row.Width,
		Height:        row.Height,
		Quantity:      row.Quantity,
		M2:            row.M2,
		M3:            row.M3,
		Tons:          row.Tons,
		SalesPrice:    row.SalesPrice,
		TotalPrice:    row.TotalPrice,
	}
}

func roundHistory(h *models.CustomerHistory) {
	h.ValueSum = utils.RoundFloat(h.ValueSum, 2)
	for _, yb := range h.Years {
		yb.ValueSum = utils.RoundFloat(yb.ValueSum, 2)
		for _, qb := range yb.Quarters {
			qb.ValueSum = utils.RoundFloat(qb.ValueSum, 2)
			for _, mb := range qb.Months {
				mb.ValueSum = utils.RoundFloat(mb.ValueSum, 2)
			}
		}
	}
}
