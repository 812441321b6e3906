package services

import (
	"context"

	"github.com/username/stonefolio/src/models"
)

// AnalyticsService exposes the pipeline entry points. Every method validates
// its arguments before any fetch, performs one record-source round-trip plus
// one in-process transform/aggregate pass, and converts every fault into a
// *ServiceError. Nothing is cached or shared between calls.
type AnalyticsService interface {
	GetSalesData(ctx context.Context, accountCode string) ([]models.CanonicalRow, *ServiceError)
	GetYearlyTrend(ctx context.Context, filterField, filterValue string) ([]models.YearlySummary, *ServiceError)
	GetSeasonalPattern(ctx context.Context, accountCode string) ([]models.SeasonSummary, *ServiceError)
	GetTopItems(ctx context.Context, groupBy string, limit int) ([]models.GroupSummary, *ServiceError)
	GetTopAccounts(ctx context.Context) ([]models.GroupSummary, *ServiceError)
	GetAccountSummary(ctx context.Context, accountCode string) (*models.AccountSummary, *ServiceError)
	GetDimensionAnalysis(ctx context.Context, accountCode string) ([]models.DimensionSummary, *ServiceError)
	GetCustomerHistory(ctx context.Context, accountCode string, yearsBack int) (*models.CustomerHistory, *ServiceError)
}
