// internal/dialog/server.go
package dialog

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/validation"
	"dining-concierge/internal/models"
)

// eventSchema guards the dialog-engine boundary: events missing the intent
// name or invocation source are rejected before they reach the state
// machine.
const eventSchema = `{
	"type": "object",
	"required": ["invocationSource", "sessionState"],
	"properties": {
		"invocationSource": {"type": "string", "minLength": 1},
		"inputTranscript": {"type": "string"},
		"sessionState": {
			"type": "object",
			"required": ["intent"],
			"properties": {
				"intent": {
					"type": "object",
					"required": ["name"],
					"properties": {
						"name": {"type": "string", "minLength": 1}
					}
				}
			}
		}
	}
}`

// Wire shapes of the dialog engine's code-hook contract.

type hookEvent struct {
	InvocationSource string `json:"invocationSource"`
	InputTranscript  string `json:"inputTranscript"`
	SessionState     struct {
		Intent hookIntent `json:"intent"`
	} `json:"sessionState"`
}

type hookIntent struct {
	Name  string                   `json:"name"`
	State string                   `json:"state,omitempty"`
	Slots map[string]*slotEnvelope `json:"slots,omitempty"`
}

type slotEnvelope struct {
	Value *slotWireValue `json:"value,omitempty"`
}

type slotWireValue struct {
	InterpretedValue string `json:"interpretedValue"`
}

type hookResponse struct {
	SessionState hookSessionState `json:"sessionState"`
	Messages     []hookMessage    `json:"messages"`
}

type hookSessionState struct {
	DialogAction hookDialogAction `json:"dialogAction"`
	Intent       hookIntent       `json:"intent"`
}

type hookDialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

type hookMessage struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Server hosts the code-hook endpoint for the external dialog engine.
type Server struct {
	handler *Handler
	logger  logger.Logger
}

func NewServer(handler *Handler, log logger.Logger) *Server {
	return &Server{
		handler: handler,
		logger:  log.WithFields(map[string]interface{}{"component": "dialog-server"}),
	}
}

// Router builds the gin engine with the hook, health and metrics routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/lex/dialog", s.handleDialogEvent)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func (s *Server) handleDialogEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if err := validation.Validate(eventSchema, body); err != nil {
		s.logger.Warn("rejected malformed event", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event hookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turn := turnFromEvent(&event)

	outcome, err := s.handler.HandleTurn(c.Request.Context(), turn)
	if err != nil {
		// Unrecognized intents are a caller-visible error, never a
		// success-shaped response.
		code := errors.CodeOf(err)
		s.logger.Error("turn rejected", map[string]interface{}{
			"intent":    turn.IntentName,
			"errorCode": string(code),
		})
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errorCode": string(code),
			"error":     err.Error(),
		})
		return
	}

	metrics.DialogTurns.WithLabelValues(turn.IntentName, string(outcome.Disposition)).Inc()
	c.JSON(http.StatusOK, responseFromOutcome(outcome))
}

func turnFromEvent(event *hookEvent) models.TurnContext {
	slots := make(map[string]*models.SlotValue, len(event.SessionState.Intent.Slots))
	for name, envelope := range event.SessionState.Intent.Slots {
		if envelope == nil || envelope.Value == nil {
			slots[name] = nil
			continue
		}
		slots[name] = &models.SlotValue{Interpreted: envelope.Value.InterpretedValue}
	}

	return models.TurnContext{
		IntentName: event.SessionState.Intent.Name,
		Phase:      models.Phase(event.InvocationSource),
		Utterance:  event.InputTranscript,
		SlotOrder:  DiningSlotOrder(),
		Slots:      slots,
	}
}

func responseFromOutcome(outcome models.DialogOutcome) hookResponse {
	slots := make(map[string]*slotEnvelope, len(outcome.Slots))
	for name, v := range outcome.Slots {
		if v == nil {
			slots[name] = nil
			continue
		}
		slots[name] = &slotEnvelope{Value: &slotWireValue{InterpretedValue: v.Interpreted}}
	}

	messages := make([]hookMessage, 0, len(outcome.Messages))
	for _, msg := range outcome.Messages {
		messages = append(messages, hookMessage{ContentType: "PlainText", Content: msg})
	}

	return hookResponse{
		SessionState: hookSessionState{
			DialogAction: hookDialogAction{
				Type:         string(outcome.Disposition),
				SlotToElicit: outcome.SlotToElicit,
			},
			Intent: hookIntent{
				Name:  outcome.IntentName,
				State: string(outcome.IntentState),
				Slots: slots,
			},
		},
		Messages: messages,
	}
}
