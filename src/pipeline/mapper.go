package pipeline

import (
	"github.com/username/stonefolio/src/models"
)

// attributesKey is the provenance metadata group Salesforce ships with every
// record and every relationship sub-record. It is never mapped.
const attributesKey = "attributes"

// fieldPaths is the fixed raw→canonical mapping for the contract product line
// query. The three relationship prefixes (Contract__r, Account__r,
// Product__r) are flattened into dotted paths before lookup; anything not in
// this table is dropped.
var fieldPaths = map[string]string{
	models.FieldAccountCode:        "Account__r.Account_Code__c",
	models.FieldSegment:            "Account__r.Segment__c",
	models.FieldContractName:       "Contract__r.Name",
	models.FieldCreatedDate:        "Contract__r.CreatedDate",
	models.FieldProductSKU:         "Product__r.ProductCode",
	models.FieldProductFamily:      "Product__r.Family",
	models.FieldStoneColor:         "Product__r.Stone_Color__c",
	models.FieldProductDescription: "Product__r.Description__c",
	models.FieldChargeUnit:         "Charge_Unit__c",
	models.FieldQuantity:           "Quantity__c",
	models.FieldLength:             "Length__c",
	models.FieldWidth:              "Width__c",
	models.FieldHeight:             "Height__c",
	models.FieldCrates:             "Crates__c",
	models.FieldM2:                 "M2__c",
	models.FieldM3:                 "M3__c",
	models.FieldTons:               "Tons__c",
	models.FieldContainers:         "Containers__c",
	models.FieldSalesPrice:         "Sales_Price__c",
	models.FieldTotalPrice:         "Total_Price__c",
}

// MapRecords flattens each raw record and renames its fields to the canonical
// flat column names. A record missing a field simply lacks that key in the
// output; no error is ever raised here.
func MapRecords(records []models.RawRecord) []models.FlatRecord {
	flats := make([]models.FlatRecord, 0, len(records))
	for _, rec := range records {
		flats = append(flats, mapRecord(rec))
	}
	return flats
}

func mapRecord(rec models.RawRecord) models.FlatRecord {
	paths := make(map[string]any)
	flatten("", rec, paths)

	out := make(models.FlatRecord, len(fieldPaths))
	for canonical, path := range fieldPaths {
		if v, ok := paths[path]; ok && v != nil {
			out[canonical] = v
		}
	}
	return out
}

// flatten walks nested maps into dotted paths, stripping the attributes
// bookkeeping group at every level.
func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		if k == attributesKey {
			continue
		}
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(path, nested, out)
			continue
		}
		out[path] = v
	}
}
