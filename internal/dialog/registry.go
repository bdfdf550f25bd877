// internal/dialog/registry.go
package dialog

import "fmt"

// Slot names of the dining suggestion intent.
const (
	SlotDate       = "date"
	SlotCity       = "city"
	SlotCount      = "count"
	SlotCuisine    = "cuisine"
	SlotLocation   = "location"
	SlotEmail      = "email"
	SlotDiningTime = "diningTime"
)

// diningSlotOrder is the declared elicitation order. The state machine
// scans it front to back and elicits the first unfilled slot.
var diningSlotOrder = []string{
	SlotDate,
	SlotCity,
	SlotCount,
	SlotCuisine,
	SlotLocation,
	SlotEmail,
	SlotDiningTime,
}

var slotPrompts = map[string]string{
	SlotDate:       "What date would you like the reservation for?",
	SlotCity:       "Which city?",
	SlotCount:      "How many people?",
	SlotCuisine:    "What type of cuisine?",
	SlotLocation:   "Which location?",
	SlotEmail:      "What is your email address?",
	SlotDiningTime: "At what time?",
}

// PromptFor returns the elicitation prompt for a slot. Unknown slot names
// get a generic prompt embedding the name; the lookup never fails.
func PromptFor(slotName string) string {
	if prompt, ok := slotPrompts[slotName]; ok {
		return prompt
	}
	return fmt.Sprintf("Please provide a value for %s.", slotName)
}

// DiningSlotOrder returns a copy of the declared slot order for the dining
// suggestion intent.
func DiningSlotOrder() []string {
	order := make([]string, len(diningSlotOrder))
	copy(order, diningSlotOrder)
	return order
}
