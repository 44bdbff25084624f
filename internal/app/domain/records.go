package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Field names used by the join and projection.
const (
	FieldUniq         = "uniq"
	FieldShopSaleName = "shop_sale_name"
	FieldSKUCode      = "sku_cd"
	FieldStockCode    = "stock_cd"
	FieldStockCount   = "stock_cnt_real"
)

// Record is one loosely typed upstream record. Numbers decode as json.Number.
type Record map[string]any

// SearchPayload is the search response body.
type SearchPayload struct {
	Results     []Record `json:"results"`
	ResultsProd []Record `json:"results_prod"`
}

// StockRow is one projected row of the stock table.
type StockRow struct {
	ShopSaleName string `json:"shop_sale_name"`
	SKUCode      string `json:"sku_cd"`
	StockCode    string `json:"stock_cd"`
	StockCount   string `json:"stock_cnt_real"`
}

// Uniq returns the record's join key. A present null is the nil key. It
// reports false when the field is absent or holds a non-scalar value.
func (r Record) Uniq() (any, bool) {
	value, ok := r[FieldUniq]
	if !ok {
		return nil, false
	}
	switch value.(type) {
	case nil, string, json.Number, float64, bool:
		return value, true
	default:
		return nil, false
	}
}

// HasUniq reports whether the uniq field is present, null included.
func (r Record) HasUniq() bool {
	_, ok := r[FieldUniq]
	return ok
}

// Merge returns a copy of r overlaid with other. Keys in other win.
func (r Record) Merge(other Record) Record {
	out := make(Record, len(r)+len(other))
	maps.Copy(out, r)
	maps.Copy(out, other)
	return out
}

// Text returns the field rendered as text. A present null renders as "".
func (r Record) Text(field string) (string, bool) {
	value, ok := r[field]
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
