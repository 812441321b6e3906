package pipeline

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/username/stonefolio/src/models"
)

// testNow fixes the pipeline clock so the year-range upper bound is stable.
var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func testPipeline() *Pipeline {
	return New(clockwork.NewFakeClockAt(testNow))
}

func rawLine(accountCode string, createdDate any, fields map[string]any) models.RawRecord {
	rec := models.RawRecord{
		"attributes": map[string]any{"type": "Contract_Product_Line__c", "url": "/services/data/v59.0/sobjects/..."},
		"Contract__r": map[string]any{
			"attributes":  map[string]any{"type": "Contract"},
			"Name":        "CTR-0001",
			"CreatedDate": createdDate,
		},
		"Account__r": map[string]any{
			"attributes":      map[string]any{"type": "Account"},
			"Account_Code__c": accountCode,
			"Segment__c":      "Wholesale",
		},
		"Product__r": map[string]any{
			"attributes":     map[string]any{"type": "Product2"},
			"ProductCode":    "GR-BLK-20",
			"Family":         "Granite",
			"Stone_Color__c": "Black",
			"Description__c": "Polished granite slab",
		},
		"Quantity__c":    float64(5),
		"Total_Price__c": float64(2500),
	}
	for k, v := range fields {
		rec[k] = v
	}
	return rec
}

func TestPipeline_Run_Scenario(t *testing.T) {
	t.Parallel()

	// String-typed numerics must coerce the same way JSON numbers do.
	rec := rawLine("ABC-001", "2022-05-10T00:00:00Z", map[string]any{
		"Quantity__c":    "12",
		"Total_Price__c": "1000",
	})

	ds := testPipeline().Run([]models.RawRecord{rec})
	require.Len(t, ds, 1)

	row := ds[0]
	require.NotNil(t, row.AccountCode)
	require.Equal(t, "ABC-001", *row.AccountCode)
	require.Equal(t, 12, row.Quantity)
	require.NotNil(t, row.TotalPrice)
	require.Equal(t, 1000.0, *row.TotalPrice)
	require.Equal(t, 2022, *row.Year)
	require.Equal(t, 5, *row.Month)
	require.Equal(t, 2, *row.Quarter)
	require.Equal(t, models.SeasonSpring, *row.Season)
	require.Equal(t, "10/05/2022", *row.DisplayDate)
}

func TestPipeline_Run_NullDateExcluded(t *testing.T) {
	t.Parallel()

	rec := rawLine("ABC-001", nil, nil)
	ds := testPipeline().Run([]models.RawRecord{rec})
	require.Empty(t, ds)
}

func TestPipeline_Run_YearRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		createdDate string
		kept        bool
	}{
		{"below lower bound", "2014-12-31T00:00:00Z", false},
		{"at lower bound", "2015-01-01T00:00:00Z", true},
		{"inside range", "2020-06-01T00:00:00Z", true},
		{"at current year", "2024-02-01T00:00:00Z", true},
		{"beyond current year", "2025-01-01T00:00:00Z", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ds := testPipeline().Run([]models.RawRecord{rawLine("ACC-1", tc.createdDate, nil)})
			if tc.kept {
				require.Len(t, ds, 1)
			} else {
				require.Empty(t, ds)
			}
		})
	}
}

func TestPipeline_Run_MissingAccountCodeExcluded(t *testing.T) {
	t.Parallel()

	rec := rawLine("", "2022-05-10T00:00:00Z", nil)
	ds := testPipeline().Run([]models.RawRecord{rec})
	require.Empty(t, ds)
}

func TestPipeline_Run_SortOrder(t *testing.T) {
	t.Parallel()

	records := []models.RawRecord{
		rawLine("X", "2020-03-01T00:00:00Z", nil),
		rawLine("X", "2021-07-01T00:00:00Z", nil),
		rawLine("A", "2019-01-01T00:00:00Z", nil),
		rawLine("X", "2021-02-01T00:00:00Z", nil),
	}
	ds := testPipeline().Run(records)
	require.Len(t, ds, 4)

	// Account code ascending, then year descending, then month descending.
	require.Equal(t, "A", *ds[0].AccountCode)
	require.Equal(t, "X", *ds[1].AccountCode)
	require.Equal(t, 2021, *ds[1].Year)
	require.Equal(t, 7, *ds[1].Month)
	require.Equal(t, 2021, *ds[2].Year)
	require.Equal(t, 2, *ds[2].Month)
	require.Equal(t, 2020, *ds[3].Year)
}

func TestPipeline_Run_SortLaw(t *testing.T) {
	t.Parallel()

	records := []models.RawRecord{
		rawLine("B", "2022-05-01T00:00:00Z", nil),
		rawLine("A", "2023-01-01T00:00:00Z", nil),
		rawLine("B", "2023-11-01T00:00:00Z", nil),
		rawLine("A", "2016-06-01T00:00:00Z", nil),
		rawLine("C", "2020-02-01T00:00:00Z", nil),
	}
	ds := testPipeline().Run(records)
	for i := 1; i < len(ds); i++ {
		a, b := ds[i-1], ds[i]
		if *a.AccountCode == *b.AccountCode {
			require.GreaterOrEqual(t, *a.Year, *b.Year)
		} else {
			require.Less(t, *a.AccountCode, *b.AccountCode)
		}
	}
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	t.Parallel()

	records := []models.RawRecord{
		rawLine("B", "2022-05-01T00:00:00Z", map[string]any{"Length__c": 60.0, "Width__c": 40.0}),
		rawLine("A", "2023-01-01T00:00:00Z", nil),
		rawLine("A", "bad-date", nil),
	}

	p := testPipeline()
	first := p.Run(records)
	second := p.Run(records)
	require.Equal(t, first, second)
}

func TestPipeline_Run_MembershipInvariant(t *testing.T) {
	t.Parallel()

	records := []models.RawRecord{
		rawLine("A", "2023-01-01T00:00:00Z", nil),
		rawLine("", "2023-01-01T00:00:00Z", nil),
		rawLine("B", "2010-01-01T00:00:00Z", nil),
		rawLine("C", nil, nil),
		rawLine("D", "2018-09-09T00:00:00Z", map[string]any{"Quantity__c": "not a number"}),
	}
	ds := testPipeline().Run(records)
	for _, row := range ds {
		require.NotNil(t, row.AccountCode)
		require.NotNil(t, row.Year)
		require.GreaterOrEqual(t, *row.Year, MinYear)
		require.LessOrEqual(t, *row.Year, testNow.Year())
		require.GreaterOrEqual(t, row.Quantity, 0)
	}
}
