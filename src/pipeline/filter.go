package pipeline

import (
	"sort"

	"github.com/username/stonefolio/src/models"
)

// MinYear is the business lower bound for the year-range filter. Rows older
// than this are out of reporting scope; do not change without confirming the
// cutoff with the sales team.
const MinYear = 2015

// FilterRows keeps only rows with a non-null account code and a year inside
// [MinYear, currentYear]. A null year never satisfies the range.
func FilterRows(rows []models.CanonicalRow, currentYear int) models.NormalizedDataset {
	kept := make(models.NormalizedDataset, 0, len(rows))
	for _, row := range rows {
		if row.AccountCode == nil || row.Year == nil {
			continue
		}
		if *row.Year < MinYear || *row.Year > currentYear {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// SortRows orders the dataset by account code ascending (case-sensitive
// lexical on the raw string), then year descending, then month descending.
// The sort is stable so rows with equal keys keep their mapper emission
// order, which matches the source's created-date-descending ordering.
// All rows here have non-null account code, year and month (post-filter).
func SortRows(ds models.NormalizedDataset) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if *a.AccountCode != *b.AccountCode {
			return *a.AccountCode < *b.AccountCode
		}
		if *a.Year != *b.Year {
			return *a.Year > *b.Year
		}
		return *a.Month > *b.Month
	})
}
