// internal/fulfillment/render.go
package fulfillment

import (
	"fmt"
	"strings"

	"dining-concierge/internal/models"
)

// Subject names the result count, cuisine, party size and time.
func Subject(req *models.ReservationRequest, resultCount int) string {
	return fmt.Sprintf("Top %d %s picks for %d @ %s",
		resultCount, capitalize(req.Cuisine), req.PartySize, req.DiningTime)
}

// RenderText renders the plain-text body. Placeholder records keep their
// position with "(name)"/"(address)" stand-ins so the ranked order is
// never disturbed.
func RenderText(req *models.ReservationRequest, records []models.BusinessRecord) string {
	var b strings.Builder
	b.WriteString("Hello,\n")
	fmt.Fprintf(&b, "Here are %d %s options for %d people at %s in %s:\n",
		len(records), capitalize(req.Cuisine), req.PartySize, req.DiningTime, req.City)

	for i, rec := range records {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, displayName(rec))
		fmt.Fprintf(&b, "   Address: %s\n", displayAddress(rec))
		if rec.Website != "" {
			fmt.Fprintf(&b, "   Website: %s\n", rec.Website)
		}
		fmt.Fprintf(&b, "   Rating:  %s  Review Count: %s\n", displayRating(rec), displayReviews(rec))
	}

	b.WriteString("\nIf you'd like me to place a reservation or refine the options, just reply here.\n")
	b.WriteString("- Your Restaurant Assistant")
	return b.String()
}

// RenderHTML renders the rich body. Same ordering and content as the plain
// form, HTML markup only.
func RenderHTML(req *models.ReservationRequest, records []models.BusinessRecord) string {
	var b strings.Builder
	b.WriteString("<p>Hello from your Restaurant Assistant,</p>\n")
	fmt.Fprintf(&b, "<p>Here are %d %s options for %d people at <strong>%s</strong> in %s:</p>\n",
		len(records), capitalize(req.Cuisine), req.PartySize, req.DiningTime, req.City)
	b.WriteString("<ol>\n")

	for _, rec := range records {
		b.WriteString("<li>\n")
		fmt.Fprintf(&b, "  <strong>%s</strong><br/>\n", displayName(rec))
		fmt.Fprintf(&b, "  %s<br/>\n", displayAddress(rec))
		fmt.Fprintf(&b, "  Rating: %s | Review Count: %s<br/>\n", displayRating(rec), displayReviews(rec))
		b.WriteString("</li>\n")
	}

	b.WriteString("</ol>\n")
	b.WriteString("<p>If you'd like me to place a reservation or refine the options, just reply here.</p>\n")
	b.WriteString("<p>- Your Restaurant Assistant</p>")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func displayName(rec models.BusinessRecord) string {
	if rec.Name == "" {
		return "(name)"
	}
	return rec.Name
}

func displayAddress(rec models.BusinessRecord) string {
	if rec.Address == "" {
		return "(address)"
	}
	return rec.Address
}

func displayRating(rec models.BusinessRecord) string {
	if rec.IsPlaceholder() {
		return "-"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", rec.Rating), "0"), ".")
}

func displayReviews(rec models.BusinessRecord) string {
	if rec.IsPlaceholder() {
		return "-"
	}
	return fmt.Sprintf("%d", rec.ReviewCount)
}
