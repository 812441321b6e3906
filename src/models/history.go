package models

import "strconv"

// HistoryLine is one per-row detail entry at the month level of a customer
// history tree, kept in dataset (arrival) order.
type HistoryLine struct {
	Date          *string  `json:"date"`
	ProductSKU    *string  `json:"product_sku"`
	ProductFamily *string  `json:"product_family"`
	StoneColor    *string  `json:"stone_color"`
	Segment       *string  `json:"segment"`
	Length        *float64 `json:"length"`
	Width         *float64 `json:"width"`
	Height        *float64 `json:"height"`
	Quantity      int      `json:"quantity"`
	M2            *float64 `json:"m2"`
	M3            *float64 `json:"m3"`
	Tons          *float64 `json:"tons"`
	SalesPrice    *float64 `json:"sales_price"`
	TotalPrice    *float64 `json:"total_price"`
}

// MonthBucket is the leaf level of the history tree.
type MonthBucket struct {
	OrderCount  int           `json:"order_count"`
	QuantitySum int           `json:"quantity_sum"`
	ValueSum    float64       `json:"value_sum"`
	Lines       []HistoryLine `json:"lines"`
}

// QuarterBucket accumulates every row that falls in its quarter, regardless
// of which months of the quarter the rows land in.
type QuarterBucket struct {
	OrderCount  int                     `json:"order_count"`
	QuantitySum int                     `json:"quantity_sum"`
	ValueSum    float64                 `json:"value_sum"`
	Months      map[string]*MonthBucket `json:"months"`
}

// YearBucket is the top level of the history tree.
type YearBucket struct {
	OrderCount  int                       `json:"order_count"`
	QuantitySum int                       `json:"quantity_sum"`
	ValueSum    float64                   `json:"value_sum"`
	Quarters    map[string]*QuarterBucket `json:"quarters"`
}

// CustomerHistory is the year -> quarter -> month rollup for one account,
// with running totals materialized at every level. Built in a single pass;
// absence of a bucket means no rows hashed into it (never a zeroed bucket).
// Bucket keys are the decimal year/quarter/month numbers as strings, the only
// map key type a JSON object (and its schema) can carry.
type CustomerHistory struct {
	AccountCode string                 `json:"account_code"`
	YearsBack   int                    `json:"years_back"`
	OrderCount  int                    `json:"order_count"`
	QuantitySum int                    `json:"quantity_sum"`
	ValueSum    float64                `json:"value_sum"`
	Years       map[string]*YearBucket `json:"years"`
}

// NewCustomerHistory returns an empty history for one (account, yearsBack)
// request.
func NewCustomerHistory(accountCode string, yearsBack int) *CustomerHistory {
	return &CustomerHistory{
		AccountCode: accountCode,
		YearsBack:   yearsBack,
		Years:       make(map[string]*YearBucket),
	}
}

// EnsureYear returns the bucket for year, creating it on first use.
func (h *CustomerHistory) EnsureYear(year int) *YearBucket {
	key := strconv.Itoa(year)
	yb, ok := h.Years[key]
	if !ok {
		yb = &YearBucket{Quarters: make(map[string]*QuarterBucket)}
		h.Years[key] = yb
	}
	return yb
}

// EnsureQuarter returns the bucket for quarter, creating it on first use.
func (yb *YearBucket) EnsureQuarter(quarter int) *QuarterBucket {
	key := strconv.Itoa(quarter)
	qb, ok := yb.Quarters[key]
	if !ok {
		qb = &QuarterBucket{Months: make(map[string]*MonthBucket)}
		yb.Quarters[key] = qb
	}
	return qb
}

// EnsureMonth returns the bucket for month, creating it on first use.
func (qb *QuarterBucket) EnsureMonth(month int) *MonthBucket {
	key := strconv.Itoa(month)
	mb, ok := qb.Months[key]
	if !ok {
		mb = &MonthBucket{}
		qb.Months[key] = mb
	}
	return mb
}
