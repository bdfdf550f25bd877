// internal/models/dialog.go
package models

// Phase is the invocation phase reported by the dialog engine for one turn.
type Phase string

const (
	PhaseDialog      Phase = "DialogCodeHook"
	PhaseFulfillment Phase = "FulfillmentCodeHook"
)

// Disposition instructs the dialog engine what to do with the conversation.
type Disposition string

const (
	DispositionClose      Disposition = "Close"
	DispositionDelegate   Disposition = "Delegate"
	DispositionElicitSlot Disposition = "ElicitSlot"
)

// IntentState is the state reported back to the dialog engine for the intent.
type IntentState string

const (
	IntentInProgress IntentState = "InProgress"
	IntentFulfilled  IntentState = "Fulfilled"
	IntentFailed     IntentState = "Failed"
)

// Intent names recognized by the state machine.
const (
	IntentGreeting         = "GreetingIntent"
	IntentThanks           = "ThanksIntent"
	IntentDiningSuggestion = "DiningSuggestionIntent"
)

// SlotValue holds the interpreted value of a filled slot. A nil *SlotValue
// or an empty Interpreted string both count as "unfilled".
type SlotValue struct {
	Interpreted string `json:"interpretedValue"`
}

// TurnContext is the unit one conversational exchange is processed against.
// It is built fresh per turn from the dialog engine's event and never
// persisted. SlotOrder carries the declared elicitation order for the
// intent; Slots is keyed by slot name.
type TurnContext struct {
	IntentName string
	Phase      Phase
	Utterance  string
	SlotOrder  []string
	Slots      map[string]*SlotValue
}

// Slot returns the interpreted value for name, or "" when unfilled.
func (t *TurnContext) Slot(name string) string {
	if v, ok := t.Slots[name]; ok && v != nil {
		return v.Interpreted
	}
	return ""
}

// FilledSlots returns only the slots that carry a non-empty value.
func (t *TurnContext) FilledSlots() map[string]string {
	out := make(map[string]string, len(t.Slots))
	for name, v := range t.Slots {
		if v != nil && v.Interpreted != "" {
			out[name] = v.Interpreted
		}
	}
	return out
}

// DialogOutcome is the state machine's result for one turn. Slots are the
// carried-forward slot values; Messages are plain-text and shown to the
// user verbatim by the dialog engine.
type DialogOutcome struct {
	Disposition  Disposition
	IntentName   string
	IntentState  IntentState
	SlotToElicit string
	Slots        map[string]*SlotValue
	Messages     []string
}
