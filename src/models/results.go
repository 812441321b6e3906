package models

// YearlySummary is one group of the by-year trend aggregation.
type YearlySummary struct {
	Year          int     `json:"year"`
	OrderCount    int     `json:"order_count"`
	QuantitySum   int     `json:"quantity_sum"`
	TotalPriceSum float64 `json:"total_price_sum"`
	AvgTotalPrice float64 `json:"avg_total_price"`
}

// SeasonSummary is one group of the seasonal pattern aggregation.
type SeasonSummary struct {
	Season        string  `json:"season"`
	OrderCount    int     `json:"order_count"`
	QuantitySum   int     `json:"quantity_sum"`
	TotalPriceSum float64 `json:"total_price_sum"`
	Percentage    float64 `json:"percentage"`
}

// GroupSummary is one group of a single-dimension grouping (by account code,
// product family, SKU or stone color).
type GroupSummary struct {
	Key           string  `json:"key"`
	OrderCount    int     `json:"order_count"`
	QuantitySum   int     `json:"quantity_sum"`
	TotalPriceSum float64 `json:"total_price_sum"`
	Percentage    float64 `json:"percentage"`
	AvgUnitPrice  float64 `json:"avg_unit_price"`
}

// SKUSummary is a nested top-N detail entry inside an AccountSummary.
type SKUSummary struct {
	ProductSKU    string  `json:"product_sku"`
	OrderCount    int     `json:"order_count"`
	QuantitySum   int     `json:"quantity_sum"`
	TotalPriceSum float64 `json:"total_price_sum"`
}

// AccountSummary is the single aggregate record for one account.
type AccountSummary struct {
	AccountCode    string       `json:"account_code"`
	OrderCount     int          `json:"order_count"`
	QuantitySum    int          `json:"quantity_sum"`
	TotalPriceSum  float64      `json:"total_price_sum"`
	AvgTotalPrice  float64      `json:"avg_total_price"`
	AvgQuantity    float64      `json:"avg_quantity"`
	DistinctSKUs   int          `json:"distinct_skus"`
	FirstOrderYear int          `json:"first_order_year"`
	LastOrderYear  int          `json:"last_order_year"`
	TopSKUs        []SKUSummary `json:"top_skus"`
}

// DimensionSummary is one group of the length/width/height triple grouping.
// A group exists only when all three dimensions are non-null on the row.
type DimensionSummary struct {
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	OrderCount    int     `json:"order_count"`
	QuantitySum   int     `json:"quantity_sum"`
	TotalPriceSum float64 `json:"total_price_sum"`
}
