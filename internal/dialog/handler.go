// internal/dialog/handler.go
package dialog

import (
	"context"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

// User-visible messages. The dialog engine renders them verbatim.
const (
	openingMessage   = "Hi there! I'm your personal Concierge. How can I help?"
	greetingMessage  = "Hi there, how can I help you today?"
	thanksMessage    = "You're very welcome!"
	fulfilledMessage = "Thank you! Your reservation request has been sent."
	failedMessage    = "Oops! Something went wrong while handling your request. Please try again."
)

// RequestPublisher hands a completed slot set to the queue transport. The
// publish is fire-and-forget from the state machine's perspective; the
// transport owns delivery.
type RequestPublisher interface {
	Publish(ctx context.Context, slots map[string]string) error
}

// Handler is the per-turn dialog state machine. It holds no mutable state;
// every turn is processed against its own TurnContext.
type Handler struct {
	publisher RequestPublisher
	logger    logger.Logger
}

func NewHandler(publisher RequestPublisher, log logger.Logger) *Handler {
	return &Handler{
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"component": "dialog"}),
	}
}

// HandleTurn computes the outcome for one conversational turn. Intent names
// the state machine does not recognize yield an UNRECOGNIZED_INTENT error to
// the caller; errors inside a recognized intent are caught here and
// converted into a Close/Failed outcome so the conversation always
// terminates cleanly for the user.
func (h *Handler) HandleTurn(ctx context.Context, turn models.TurnContext) (models.DialogOutcome, error) {
	switch turn.IntentName {
	case models.IntentGreeting:
		return h.acknowledge(turn, greetingMessage), nil
	case models.IntentThanks:
		return h.acknowledge(turn, thanksMessage), nil
	case models.IntentDiningSuggestion:
		outcome, err := h.diningSuggestion(ctx, turn)
		if err != nil {
			code := errors.CodeOf(err)
			h.logger.Error("turn failed", map[string]interface{}{
				"intent":    turn.IntentName,
				"errorCode": string(code),
				"error":     err.Error(),
			})
			metrics.DialogTurnFailures.WithLabelValues(turn.IntentName, string(code)).Inc()
			return h.failureOutcome(turn), nil
		}
		return outcome, nil
	default:
		return models.DialogOutcome{}, errors.NewUnrecognizedIntentError(turn.IntentName)
	}
}

// acknowledge handles the simple greeting/thanks intents. During the
// engine's dialog bookkeeping phase the machine must stay silent, otherwise
// the user would see the message twice for one turn.
func (h *Handler) acknowledge(turn models.TurnContext, message string) models.DialogOutcome {
	if turn.Phase == models.PhaseFulfillment {
		return models.DialogOutcome{
			Disposition: models.DispositionClose,
			IntentName:  turn.IntentName,
			IntentState: models.IntentFulfilled,
			Slots:       turn.Slots,
			Messages:    []string{message},
		}
	}
	return models.DialogOutcome{
		Disposition: models.DispositionDelegate,
		IntentName:  turn.IntentName,
		Slots:       turn.Slots,
	}
}

func (h *Handler) diningSuggestion(ctx context.Context, turn models.TurnContext) (models.DialogOutcome, error) {
	var messages []string
	if turn.Utterance == "" {
		messages = append(messages, openingMessage)
	}

	order := turn.SlotOrder
	if len(order) == 0 {
		order = DiningSlotOrder()
	}

	// First-empty-wins over the declared order.
	slotToElicit := ""
	for _, name := range order {
		if turn.Slot(name) == "" {
			slotToElicit = name
			break
		}
	}

	if slotToElicit != "" {
		messages = append(messages, PromptFor(slotToElicit))
		return models.DialogOutcome{
			Disposition:  models.DispositionElicitSlot,
			IntentName:   turn.IntentName,
			IntentState:  models.IntentInProgress,
			SlotToElicit: slotToElicit,
			Slots:        turn.Slots,
			Messages:     messages,
		}, nil
	}

	if turn.Phase == models.PhaseFulfillment {
		if err := h.publisher.Publish(ctx, turn.FilledSlots()); err != nil {
			return models.DialogOutcome{}, err
		}
		h.logger.Info("reservation request published", map[string]interface{}{
			"intent": turn.IntentName,
		})
		return models.DialogOutcome{
			Disposition: models.DispositionClose,
			IntentName:  turn.IntentName,
			IntentState: models.IntentFulfilled,
			Slots:       turn.Slots,
			Messages:    []string{fulfilledMessage},
		}, nil
	}

	// All slots filled but the engine is still converging; defer the
	// publish to the fulfillment phase so the side effect cannot fire
	// twice.
	return models.DialogOutcome{
		Disposition: models.DispositionDelegate,
		IntentName:  turn.IntentName,
		Slots:       turn.Slots,
	}, nil
}

func (h *Handler) failureOutcome(turn models.TurnContext) models.DialogOutcome {
	return models.DialogOutcome{
		Disposition: models.DispositionClose,
		IntentName:  turn.IntentName,
		IntentState: models.IntentFailed,
		Slots:       turn.Slots,
		Messages:    []string{failedMessage},
	}
}
