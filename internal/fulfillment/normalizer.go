// internal/fulfillment/normalizer.go
package fulfillment

import (
	"strconv"
	"strings"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/models"
)

// Accepted key spellings per field, in priority order. Producers disagree
// on casing and shape; resolution goes through these lists only, never by
// reflecting over arbitrary keys.
var (
	cuisineKeys  = []string{"cuisine", "Cuisine"}
	countKeys    = []string{"count", "Count", "numPeople", "num_people"}
	dateKeys     = []string{"date", "Date"}
	timeKeys     = []string{"diningTime", "dining_time", "time"}
	cityKeys     = []string{"city", "City"}
	locationKeys = []string{"location", "Location"}
	emailKeys    = []string{"email", "Email"}
)

// Normalize converts a raw attribute payload into a canonical reservation
// request. It fails fast naming the first required field no accepted key
// yields a value for; it derives nothing and guesses no defaults. Running
// it twice on the same payload yields field-for-field identical requests.
func Normalize(payload models.AttributePayload) (*models.ReservationRequest, error) {
	cuisine := payload.Get(cuisineKeys...)
	if cuisine == "" {
		return nil, errors.NewMissingRequiredFieldError("cuisine")
	}

	rawCount := payload.Get(countKeys...)
	if rawCount == "" {
		return nil, errors.NewMissingRequiredFieldError("count")
	}
	partySize, err := strconv.Atoi(strings.TrimSpace(rawCount))
	if err != nil || partySize <= 0 {
		return nil, errors.NewInvalidFieldTypeError("count", rawCount)
	}

	date := payload.Get(dateKeys...)
	if date == "" {
		return nil, errors.NewMissingRequiredFieldError("date")
	}

	diningTime := payload.Get(timeKeys...)
	if diningTime == "" {
		return nil, errors.NewMissingRequiredFieldError("diningTime")
	}

	city := payload.Get(cityKeys...)
	if city == "" {
		return nil, errors.NewMissingRequiredFieldError("city")
	}

	email := payload.Get(emailKeys...)
	if email == "" {
		return nil, errors.NewMissingRequiredFieldError("email")
	}
	if !strings.Contains(email, "@") {
		return nil, errors.NewInvalidFieldTypeError("email", email)
	}

	return &models.ReservationRequest{
		Cuisine:    cuisine,
		PartySize:  partySize,
		Date:       date,
		DiningTime: diningTime,
		City:       city,
		Location:   payload.Get(locationKeys...), // locality may be empty
		Email:      email,
	}, nil
}
