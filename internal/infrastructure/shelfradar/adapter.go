package shelfradar

import (
	"github.com/tolmol/backend/internal/domain"
)

// AdaptRecord converts one loosely-typed upstream listing into a
// ProductRecord. The upstream API has no enforced schema and renames fields
// between platforms, so each field is extracted from the first present key
// of its known aliases, with safe defaults for everything missing.
func AdaptRecord(entry map[string]interface{}) domain.ProductRecord {
	rec := domain.ProductRecord{
		ProductID:     stringField(entry, "id", "product_id"),
		Name:          stringField(entry, "name", "title", "product_name"),
		Brand:         stringField(entry, "brand", "manufacturer"),
		Size:          stringField(entry, "size", "package", "pack"),
		Unit:          stringField(entry, "unit"),
		Platform:      stringField(entry, "platform", "store"),
		Store:         stringField(entry, "store"),
		Price:         floatField(entry, "price"),
		OriginalPrice: floatField(entry, "original_price"),
		Discount:      floatField(entry, "discount"),
		InStock:       boolField(entry, "in_stock"),
		URL:           stringField(entry, "url"),
		Image:         imageField(entry),
		Category:      stringField(entry, "category"),
		Description:   stringField(entry, "description"),
		Rating:        floatField(entry, "rating"),
		Reviews:       int(floatField(entry, "reviews")),
	}
	if rec.OriginalPrice == 0 {
		rec.OriginalPrice = rec.Price
	}
	return rec
}

// stringField returns the first present non-empty string among the keys
func stringField(entry map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := entry[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// floatField returns the first present numeric value among the keys.
// JSON numbers decode as float64; numeric strings are not converted.
func floatField(entry map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := entry[key].(float64); ok {
			return v
		}
	}
	return 0
}

// boolField returns the first present boolean among the keys
func boolField(entry map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if v, ok := entry[key].(bool); ok {
			return v
		}
	}
	return false
}

// imageField prefers the scalar image field, falling back to the first
// entry of an images array
func imageField(entry map[string]interface{}) string {
	if v, ok := entry["image"].(string); ok && v != "" {
		return v
	}
	if images, ok := entry["images"].([]interface{}); ok && len(images) > 0 {
		if v, ok := images[0].(string); ok {
			return v
		}
	}
	return ""
}
