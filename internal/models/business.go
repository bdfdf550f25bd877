// internal/models/business.go
package models

// SearchHit is one entry of the ranked search result: an opaque business
// identifier plus the index relevance score. Order across hits is
// significant and must be preserved end-to-end.
type SearchHit struct {
	BusinessID string  `json:"business_id"`
	Score      float64 `json:"score"`
}

// BusinessRecord is the full record looked up by identifier from the
// record store.
type BusinessRecord struct {
	BusinessID  string  `json:"business_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Website     string  `json:"website,omitempty"`
	Cuisine     string  `json:"cuisine,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	InsertedAt  string  `json:"insertedAtTimestamp,omitempty"`
}

// Placeholder builds the stand-in record used when an identifier cannot be
// resolved; it carries only the identifier.
func Placeholder(businessID string) BusinessRecord {
	return BusinessRecord{BusinessID: businessID}
}

// IsPlaceholder reports whether the record carries identifier-only data.
func (b BusinessRecord) IsPlaceholder() bool {
	return b.Name == "" && b.Address == ""
}
