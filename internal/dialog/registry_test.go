// internal/dialog/registry_test.go
package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiningSlotOrder_ReturnsCopy(t *testing.T) {
	order := DiningSlotOrder()
	assert.Equal(t, []string{
		SlotDate, SlotCity, SlotCount, SlotCuisine, SlotLocation, SlotEmail, SlotDiningTime,
	}, order)

	order[0] = "tampered"
	assert.Equal(t, SlotDate, DiningSlotOrder()[0], "callers must not be able to mutate the declared order")
}

func TestPromptFor(t *testing.T) {
	tests := []struct {
		name string
		slot string
		want string
	}{
		{name: "known slot", slot: SlotCuisine, want: "What type of cuisine?"},
		{name: "known slot with camel case name", slot: SlotDiningTime, want: "At what time?"},
		{name: "unknown slot gets generic prompt", slot: "budget", want: "Please provide a value for budget."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PromptFor(tt.slot))
		})
	}
}

func TestPromptFor_CoversEveryDeclaredSlot(t *testing.T) {
	for _, slot := range DiningSlotOrder() {
		assert.NotContains(t, PromptFor(slot), "Please provide a value", "slot %s is missing a dedicated prompt", slot)
	}
}
