// internal/fulfillment/render_test.go
package fulfillment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dining-concierge/internal/models"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.ReservationRequest
		results int
		want    string
	}{
		{
			name:    "capitalizes cuisine",
			req:     &models.ReservationRequest{Cuisine: "japanese", PartySize: 2, DiningTime: "19:00"},
			results: 3,
			want:    "Top 3 Japanese picks for 2 @ 19:00",
		},
		{
			name:    "zero results",
			req:     &models.ReservationRequest{Cuisine: "thai", PartySize: 5, DiningTime: "8 pm"},
			results: 0,
			want:    "Top 0 Thai picks for 5 @ 8 pm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subject(tt.req, tt.results))
		})
	}
}

func TestRenderText(t *testing.T) {
	req := &models.ReservationRequest{Cuisine: "italian", PartySize: 4, DiningTime: "20:00", City: "Manhattan"}
	records := []models.BusinessRecord{
		{BusinessID: "A", Name: "Lilia", Address: "567 Union Ave", Website: "https://example.com/lilia", Rating: 4.5, ReviewCount: 980},
		models.Placeholder("B"),
	}

	body := RenderText(req, records)

	assert.Contains(t, body, "Here are 2 Italian options for 4 people at 20:00 in Manhattan:")
	assert.Contains(t, body, "1. Lilia")
	assert.Contains(t, body, "Address: 567 Union Ave")
	assert.Contains(t, body, "Website: https://example.com/lilia")
	assert.Contains(t, body, "Rating:  4.5  Review Count: 980")

	assert.Contains(t, body, "2. (name)")
	assert.Contains(t, body, "Address: (address)")
	assert.Contains(t, body, "Rating:  -  Review Count: -")

	// Placeholders never get a website line.
	assert.Equal(t, 1, strings.Count(body, "Website:"))
}

func TestRenderText_RatingFormatting(t *testing.T) {
	req := &models.ReservationRequest{Cuisine: "thai", PartySize: 1, DiningTime: "12:00", City: "Queens"}

	body := RenderText(req, []models.BusinessRecord{
		{BusinessID: "A", Name: "X", Address: "1 St", Rating: 4.0, ReviewCount: 10},
	})

	// Whole-number ratings drop the trailing ".0".
	assert.Contains(t, body, "Rating:  4  Review Count: 10")
}

func TestRenderHTML(t *testing.T) {
	req := &models.ReservationRequest{Cuisine: "italian", PartySize: 4, DiningTime: "20:00", City: "Manhattan"}
	records := []models.BusinessRecord{
		{BusinessID: "A", Name: "Lilia", Address: "567 Union Ave", Rating: 4.5, ReviewCount: 980},
		models.Placeholder("B"),
	}

	body := RenderHTML(req, records)

	assert.Contains(t, body, "<ol>")
	assert.Contains(t, body, "<strong>Lilia</strong>")
	assert.Contains(t, body, "567 Union Ave<br/>")
	assert.Contains(t, body, "Rating: 4.5 | Review Count: 980")
	assert.Contains(t, body, "<strong>(name)</strong>")
	assert.Contains(t, body, "Rating: - | Review Count: -")
	assert.Equal(t, 2, strings.Count(body, "<li>"))
}
