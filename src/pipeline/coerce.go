package pipeline

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/username/stonefolio/src/models"
)

// Timestamp layouts accepted for the contract created date. Salesforce emits
// the second form; RFC3339 and plain dates cover exports and fixtures.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02",
}

// CoerceRow converts one flat mapped record into a typed CanonicalRow under
// the fail-soft policy: a malformed or absent value becomes null (quantity
// becomes 0) and coercion itself never fails.
func CoerceRow(fr models.FlatRecord) models.CanonicalRow {
	return models.CanonicalRow{
		AccountCode:        toString(fr[models.FieldAccountCode]),
		ProductSKU:         toString(fr[models.FieldProductSKU]),
		ProductFamily:      toString(fr[models.FieldProductFamily]),
		StoneColor:         toString(fr[models.FieldStoneColor]),
		Segment:            toString(fr[models.FieldSegment]),
		ContractName:       toString(fr[models.FieldContractName]),
		ProductDescription: toString(fr[models.FieldProductDescription]),
		ChargeUnit:         toString(fr[models.FieldChargeUnit]),

		Quantity:   toInt(fr[models.FieldQuantity]),
		Length:     toFloat(fr[models.FieldLength]),
		Width:      toFloat(fr[models.FieldWidth]),
		Height:     toFloat(fr[models.FieldHeight]),
		Crates:     toFloat(fr[models.FieldCrates]),
		M2:         toFloat(fr[models.FieldM2]),
		M3:         toFloat(fr[models.FieldM3]),
		Tons:       toFloat(fr[models.FieldTons]),
		Containers: toFloat(fr[models.FieldContainers]),
		SalesPrice: toFloat(fr[models.FieldSalesPrice]),
		TotalPrice: toFloat(fr[models.FieldTotalPrice]),

		CreatedDate: toTime(fr[models.FieldCreatedDate]),
	}
}

// toString returns the value as a string pointer, or nil for null, absent,
// non-string, or blank input.
func toString(v any) *string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// toFloat parses numerics arriving as JSON numbers or numeric strings.
func toFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &f
		}
	}
	return nil
}

// toInt is the quantity rule: failed or absent conversion yields 0, never null.
func toInt(v any) int {
	if f := toFloat(v); f != nil {
		return int(*f)
	}
	return 0
}

// toTime parses the created-date timestamp. An unparseable date yields nil;
// there is no fallback to the current time or any default.
func toTime(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
