package pipeline

import (
	"time"

	"github.com/username/stonefolio/src/models"
)

// DisplayDateFormat renders the contract date as DD/MM/YYYY.
const DisplayDateFormat = "02/01/2006"

// DeriveTimeDimensions fills the temporal attributes of a row from its parsed
// created date. When the date is null every derived field stays null, which
// later fails the year-range filter.
func DeriveTimeDimensions(row *models.CanonicalRow) {
	if row.CreatedDate == nil {
		return
	}
	t := *row.CreatedDate

	year := t.Year()
	month := int(t.Month())
	quarter := (month-1)/3 + 1
	_, isoWeek := t.ISOWeek()
	season := seasonOf(t.Month())
	display := t.Format(DisplayDateFormat)

	row.Year = &year
	row.Month = &month
	row.Quarter = &quarter
	row.ISOWeek = &isoWeek
	row.Season = &season
	row.DisplayDate = &display
}

func seasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return models.SeasonWinter
	case time.March, time.April, time.May:
		return models.SeasonSpring
	case time.June, time.July, time.August:
		return models.SeasonSummer
	default:
		return models.SeasonFall
	}
}
