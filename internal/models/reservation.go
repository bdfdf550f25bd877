// internal/models/reservation.go
package models

// Attribute is one typed entry of a raw batch-record payload. The shape
// mirrors SQS message attributes: a declared data type plus the string
// rendering of the value.
type Attribute struct {
	DataType    string `json:"dataType"`
	StringValue string `json:"stringValue"`
}

// AttributePayload is the raw attribute bag delivered with a queued job.
// Key spelling and casing vary across producers; required fields are
// resolved through explicit alias lists, never by reflecting over keys.
type AttributePayload map[string]Attribute

// Get returns the string value for the first of the given keys that holds
// a non-empty value.
func (p AttributePayload) Get(keys ...string) string {
	for _, k := range keys {
		if attr, ok := p[k]; ok && attr.StringValue != "" {
			return attr.StringValue
		}
	}
	return ""
}

// BatchJob is one queued unit of fulfillment work. ID is opaque to the
// core; ReceiptHandle belongs to the queue transport and is only carried
// so consumed jobs can be deleted.
type BatchJob struct {
	ID            string
	ReceiptHandle string
	Payload       AttributePayload
}

// ReservationRequest is the canonical value the fulfillment pipeline
// consumes. It is constructed only by the normalizer, and only when every
// required field is present and well-typed; once built it is never
// mutated.
type ReservationRequest struct {
	Cuisine    string
	PartySize  int
	Date       string
	DiningTime string
	City       string
	Location   string
	Email      string
}
