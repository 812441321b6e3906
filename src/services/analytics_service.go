package services

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/username/stonefolio/src/analytics"
	"github.com/username/stonefolio/src/database"
	"github.com/username/stonefolio/src/logger"
	"github.com/username/stonefolio/src/models"
	"github.com/username/stonefolio/src/pipeline"
	"github.com/username/stonefolio/src/salesforce"
)

const (
	DefaultTopItemsLimit   = 10
	TopAccountsLimit       = 5
	DimensionAnalysisLimit = 10
	DefaultYearsBack       = 3
)

type analyticsServiceImpl struct {
	source   salesforce.RecordSource
	pipeline *pipeline.Pipeline
	clock    clockwork.Clock
}

func NewAnalyticsService(source salesforce.RecordSource, p *pipeline.Pipeline, clock clockwork.Clock) AnalyticsService {
	return &analyticsServiceImpl{
		source:   source,
		pipeline: p,
		clock:    clock,
	}
}

// boundary is the per-call failure boundary: it converts any panic into an
// internal ServiceError and records the audit row. Use via defer with named
// returns.
func (s *analyticsServiceImpl) boundary(tool, accountCode string, start time.Time, serr **ServiceError) {
	if r := recover(); r != nil {
		if logger.L != nil {
			logger.L.Error("Unexpected fault in pipeline entry point", "tool", tool, "panic", r)
		}
		*serr = &ServiceError{Kind: ErrKindInternal, Message: "unexpected internal error"}
	}
	success := *serr == nil
	errorKind := ""
	if !success {
		errorKind = string((*serr).Kind)
	}
	database.RecordInvocation(tool, accountCode, s.clock.Now().Sub(start), success, errorKind)
}

// fetchDataset performs the single record-source round-trip followed by the
// transform pass. accountCode, when non-blank, is passed through as the
// narrowing filter; the pipeline's own filters apply regardless.
func (s *analyticsServiceImpl) fetchDataset(ctx context.Context, accountCode string) (models.NormalizedDataset, *ServiceError) {
	records, err := s.source.FetchProductLines(ctx, accountCode)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Record source fetch failed", "error", err)
		}
		return nil, sourceErr(err)
	}
	return s.pipeline.Run(records), nil
}

func (s *analyticsServiceImpl) GetSalesData(ctx context.Context, accountCode string) (rows []models.CanonicalRow, serr *ServiceError) {
	defer s.boundary("get_sales_data", accountCode, s.clock.Now(), &serr)

	ds, serr := s.fetchDataset(ctx, accountCode)
	if serr != nil {
		return nil, serr
	}
	if strings.TrimSpace(accountCode) != "" {
		ds = analytics.FilterByAccount(ds, accountCode)
	}
	return ds, nil
}

func (s *analyticsServiceImpl) GetYearlyTrend(ctx context.Context, filterField, filterValue string) (trend []models.YearlySummary, serr *ServiceError) {
	// The account-code narrowing is the only pass-through the source accepts,
	// and the only filter value that belongs in the audit account column.
	narrow := ""
	if filterField == models.FieldAccountCode {
		narrow = filterValue
	}
	defer s.boundary("get_yearly_sales_trend", narrow, s.clock.Now(), &serr)

	var accessor func(models.CanonicalRow) *string
	if filterField != "" {
		var ok bool
		accessor, ok = analytics.TrendFilterFields[filterField]
		if !ok {
			return nil, invalidArgf("invalid filter field %q; valid fields: %s",
				filterField, strings.Join(analytics.ValidTrendFilterFieldNames(), ", "))
		}
		if strings.TrimSpace(filterValue) == "" {
			return nil, invalidArgf("filter_value is required when filter_field is set")
		}
	}

	ds, serr := s.fetchDataset(ctx, narrow)
	if serr != nil {
		return nil, serr
	}
	if accessor != nil {
		ds = analytics.FilterByField(ds, accessor, filterValue)
	}
	return analytics.YearlyTrend(ds), nil
}

func (s *analyticsServiceImpl) GetSeasonalPattern(ctx context.Context, accountCode string) (pattern []models.SeasonSummary, serr *ServiceError) {
	defer s.boundary("get_seasonal_sales_pattern", accountCode, s.clock.Now(), &serr)

	ds, serr := s.fetchDataset(ctx, accountCode)
	if serr != nil {
		return nil, serr
	}
	if strings.TrimSpace(accountCode) != "" {
		ds = analytics.FilterByAccount(ds, accountCode)
	}
	return analytics.SeasonalPattern(ds), nil
}

func (s *analyticsServiceImpl) GetTopItems(ctx context.Context, groupBy string, limit int) (groups []models.GroupSummary, serr *ServiceError) {
	defer s.boundary("get_top_items_summary", "", s.clock.Now(), &serr)

	// Verbatim, case-sensitive match against the closed set.
	accessor, ok := analytics.GroupFields[groupBy]
	if !ok {
		return nil, invalidArgf("invalid grouping field %q; valid fields: %s",
			groupBy, strings.Join(analytics.ValidGroupFieldNames(), ", "))
	}
	if limit <= 0 {
		limit = DefaultTopItemsLimit
	}

	ds, serr := s.fetchDataset(ctx, "")
	if serr != nil {
		return nil, serr
	}
	return analytics.GroupBy(ds, accessor, limit), nil
}

func (s *analyticsServiceImpl) GetTopAccounts(ctx context.Context) (groups []models.GroupSummary, serr *ServiceError) {
	defer s.boundary("get_top_accounts", "", s.clock.Now(), &serr)

	ds, serr := s.fetchDataset(ctx, "")
	if serr != nil {
		return nil, serr
	}
	return analytics.GroupBy(ds, analytics.GroupFields[models.FieldAccountCode], TopAccountsLimit), nil
}

func (s *analyticsServiceImpl) GetAccountSummary(ctx context.Context, accountCode string) (summary *models.AccountSummary, serr *ServiceError) {
	defer s.boundary("get_account_summary", accountCode, s.clock.Now(), &serr)

	if strings.TrimSpace(accountCode) == "" {
		return nil, invalidArgf("account_code is required")
	}

	ds, serr := s.fetchDataset(ctx, accountCode)
	if serr != nil {
		return nil, serr
	}
	ds = analytics.FilterByAccount(ds, accountCode)
	return analytics.Summarize(ds, strings.TrimSpace(accountCode)), nil
}

func (s *analyticsServiceImpl) GetDimensionAnalysis(ctx context.Context, accountCode string) (dims []models.DimensionSummary, serr *ServiceError) {
	defer s.boundary("get_dimension_analysis", accountCode, s.clock.Now(), &serr)

	ds, serr := s.fetchDataset(ctx, accountCode)
	if serr != nil {
		return nil, serr
	}
	if strings.TrimSpace(accountCode) != "" {
		ds = analytics.FilterByAccount(ds, accountCode)
	}
	return analytics.DimensionAnalysis(ds, DimensionAnalysisLimit), nil
}

func (s *analyticsServiceImpl) GetCustomerHistory(ctx context.Context, accountCode string, yearsBack int) (history *models.CustomerHistory, serr *ServiceError) {
	defer s.boundary("get_customer_history", accountCode, s.clock.Now(), &serr)

	if strings.TrimSpace(accountCode) == "" {
		return nil, invalidArgf("account_code is required")
	}
	if yearsBack < 0 {
		return nil, invalidArgf("years_back must be >= 0")
	}

	ds, serr := s.fetchDataset(ctx, accountCode)
	if serr != nil {
		return nil, serr
	}
	currentYear := s.clock.Now().Year()
	return analytics.BuildCustomerHistory(ds, strings.TrimSpace(accountCode), yearsBack, currentYear), nil
}
