package models

import "time"

// RawRecord is one nested record as returned by the Record Source: a decoded
// SOQL result row whose relationship fields (Contract__r, Account__r,
// Product__r) arrive as nested maps and whose leaf values are untyped.
type RawRecord = map[string]any

// FlatRecord is the Field Mapper output: canonical flat field name -> raw
// (still untyped) value. Only the canonical names below are ever present.
type FlatRecord = map[string]any

// Canonical flat field names produced by the Field Mapper and consumed by the
// Type Coercion Layer and the grouping operations.
const (
	FieldAccountCode        = "account_code"
	FieldSegment            = "segment"
	FieldContractName       = "contract_name"
	FieldCreatedDate        = "created_date"
	FieldProductSKU         = "product_sku"
	FieldProductFamily      = "product_family"
	FieldStoneColor         = "stone_color"
	FieldProductDescription = "product_description"
	FieldChargeUnit         = "charge_unit"
	FieldQuantity           = "quantity"
	FieldLength             = "length"
	FieldWidth              = "width"
	FieldHeight             = "height"
	FieldCrates             = "crates"
	FieldM2                 = "m2"
	FieldM3                 = "m3"
	FieldTons               = "tons"
	FieldContainers         = "containers"
	FieldSalesPrice         = "sales_price"
	FieldTotalPrice         = "total_price"
)

// Seasons derived from the contract month.
const (
	SeasonWinter = "Winter"
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
)

// CanonicalRow is one fully-typed row of the Normalized Dataset. Nullable
// fields are pointers so JSON output carries an explicit null, never a
// sentinel. Quantity is the one exception: coercion failure yields 0.
// Rows are never mutated after construction.
type CanonicalRow struct {
	AccountCode        *string `json:"account_code"`
	ProductSKU         *string `json:"product_sku"`
	ProductFamily      *string `json:"product_family"`
	StoneColor         *string `json:"stone_color"`
	Segment            *string `json:"segment"`
	ContractName       *string `json:"contract_name"`
	ProductDescription *string `json:"product_description"`
	ChargeUnit         *string `json:"charge_unit"`

	Quantity   int      `json:"quantity"`
	Length     *float64 `json:"length"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
	Crates     *float64 `json:"crates"`
	M2         *float64 `json:"m2"`
	M3         *float64 `json:"m3"`
	Tons       *float64 `json:"tons"`
	Containers *float64 `json:"containers"`
	SalesPrice *float64 `json:"sales_price"`
	TotalPrice *float64 `json:"total_price"`

	CreatedDate *time.Time `json:"created_date"`
	Year        *int       `json:"year"`
	Month       *int       `json:"month"`
	Quarter     *int       `json:"quarter"`
	ISOWeek     *int       `json:"iso_week"`
	Season      *string    `json:"season"`
	DisplayDate *string    `json:"display_date"`
}

// NormalizedDataset is the filtered, sorted, fully-typed row collection all
// analytics read from. Built once per call, read-only downstream, discarded
// when the call returns.
type NormalizedDataset []CanonicalRow
