// Package chat runs the conversation loop. The orchestrator owns one turn
// end to end: load the session, route the message to an operation, execute
// it, normalize the result into a reply, and persist the updated session.
// Each turn moves through a fixed set of states and there are no retries;
// a failed upstream call becomes a friendly error reply.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/intent"
	"github.com/printdesk/printdesk/internal/logging"
	"github.com/printdesk/printdesk/internal/normalize"
	"github.com/printdesk/printdesk/internal/ops"
)

// Turn states, logged as each turn progresses.
const (
	stateReceived    = "received"
	stateRouting     = "routing"
	stateExecuting   = "executing"
	stateNormalizing = "normalizing"
	stateReplied     = "replied"
	stateErrored     = "errored"
)

// Hook event names fired by the orchestrator.
const (
	EventMessageReceived = "message_received"
	EventTurnCompleted   = "turn_completed"
	EventTurnErrored     = "turn_errored"
)

// SessionStore persists conversation sessions between turns.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
}

// HookRunner fires lifecycle events. Fire must not block the turn.
type HookRunner interface {
	Fire(event string, data map[string]any)
}

// Orchestrator processes chat turns.
type Orchestrator struct {
	router     *intent.Router
	registry   *ops.Registry
	norm       *normalize.Normalizer
	store       SessionStore
	hooks       HookRunner
	log         *logging.Logger
	maxHistory  int
	idleTimeout time.Duration
}

// Options configures an orchestrator.
type Options struct {
	Router      *intent.Router
	Registry    *ops.Registry
	Normalizer  *normalize.Normalizer
	Store       SessionStore
	Hooks       HookRunner    // optional
	MaxHistory  int           // messages kept per session, 0 means 50
	IdleTimeout time.Duration // idle sessions restart fresh, 0 disables
}

// NewOrchestrator wires a chat orchestrator from its parts.
func NewOrchestrator(opts Options, log *logging.Logger) *Orchestrator {
	maxHistory := opts.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &Orchestrator{
		router:      opts.Router,
		registry:    opts.Registry,
		norm:        opts.Normalizer,
		store:       opts.Store,
		hooks:       opts.Hooks,
		log:         log.Sub("chat"),
		maxHistory:  maxHistory,
		idleTimeout: opts.IdleTimeout,
	}
}

// Turn processes one chat turn and returns the reply. It never returns an
// error to the caller; every failure mode becomes a TurnResponse the user
// can read.
func (o *Orchestrator) Turn(ctx context.Context, req domain.TurnRequest) domain.TurnResponse {
	log := o.log.Zerolog().With().Str("session", req.SessionID).Logger()
	log.Debug().Str("state", stateReceived).Msg("turn started")

	userMsg := req.LastUserMessage()
	if userMsg == nil || userMsg.Content == "" {
		// Nothing to respond to; do not touch the session.
		return domain.TurnResponse{
			Success:   true,
			SessionID: req.SessionID,
			Message:   "I don't see any messages to respond to. What can I help you with?",
		}
	}

	sess, err := o.loadSession(ctx, req.SessionID)
	if err != nil {
		log.Error().Err(err).Str("state", stateErrored).Msg("session load failed")
		return o.errored(req.SessionID, "I couldn't load your conversation. Please try again.")
	}

	sess.Messages = append(sess.Messages, *userMsg)
	o.fire(EventMessageReceived, map[string]any{
		"session": sess.ID,
		"text":    userMsg.Content,
	})

	sentiment := intent.DetectSentiment(userMsg.Content)

	var match intent.Match
	if req.Action != "" {
		match, err = o.actionMatch(req, sess)
	} else {
		log.Debug().Str("state", stateRouting).Msg("routing message")
		match, err = o.router.Route(intent.Input{
			Text:      userMsg.Content,
			Context:   &sess.Context,
			Sentiment: sentiment,
		})
	}
	if err != nil {
		// A validation error is a clarification request, not a failure.
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp := domain.TurnResponse{
				Success:   true,
				SessionID: sess.ID,
				Message:   clarifyMessage(match.Operation, verr),
			}
			o.finish(ctx, sess, resp, stateReplied)
			return resp
		}
		log.Error().Err(err).Str("state", stateErrored).Msg("routing failed")
		return o.errored(sess.ID, "I couldn't work out what you're asking for.")
	}

	log.Debug().
		Str("state", stateExecuting).
		Str("operation", match.Operation).
		Str("rule", match.Rule).
		Msg("executing operation")
	result := o.registry.Execute(ctx, match.Operation, match.Params)

	log.Debug().Str("state", stateNormalizing).Msg("normalizing result")
	rich, summary := o.norm.Normalize(match.Operation, result)
	o.updateContext(sess, match, result)

	resp := domain.TurnResponse{
		Success:   result.Success,
		SessionID: sess.ID,
		Message:   summary,
		RichData:  rich,
	}
	if !result.Success {
		resp.Error = result.Error
	}

	state := stateReplied
	if !result.Success {
		state = stateErrored
	}
	o.finish(ctx, sess, resp, state)
	return resp
}

// actionMatch builds the operation call for an explicit UI action, such as
// a submitted quote form, without consulting the router.
func (o *Orchestrator) actionMatch(req domain.TurnRequest, sess *domain.Session) (intent.Match, error) {
	switch req.Action {
	case domain.ActionCreateQuote, domain.ActionCreateInvoice:
	default:
		return intent.Match{}, &domain.ValidationError{Field: "action", Message: "unknown action " + req.Action}
	}

	customerID := req.CustomerID
	if customerID == "" {
		customerID = sess.Context.LastCustomerID
	}
	if customerID == "" {
		return intent.Match{Operation: req.Action}, &domain.ValidationError{
			Field:   "customerId",
			Message: "no customer selected for " + req.Action,
		}
	}

	params := map[string]any{"customerId": customerID}
	if len(req.QuoteData) > 0 {
		params["input"] = req.QuoteData
	}
	return intent.Match{Operation: req.Action, Params: params, Rule: "action"}, nil
}

// updateContext records what the turn touched so follow-up messages can
// refer to "that order" or omit the customer.
func (o *Orchestrator) updateContext(sess *domain.Session, match intent.Match, result domain.Result) {
	if !result.Success {
		return
	}
	switch result.Kind {
	case domain.KindOrder:
		if order, ok := result.Data.(domain.Order); ok {
			sess.Context.LastOrderID = order.ID
			sess.Context.LastOrderType = order.Type
			if order.CustomerID != "" {
				sess.Context.LastCustomerID = order.CustomerID
			}
		}
	case domain.KindCustomer:
		if c, ok := result.Data.(domain.Customer); ok {
			sess.Context.LastCustomerID = c.ID
		}
	case domain.KindList:
		if ld, ok := result.Data.(domain.ListData); ok && ld.SearchTerm != "" {
			sess.Context.LastSearchTerm = ld.SearchTerm
		}
	}
}

// finish appends the assistant reply, trims history, persists the session,
// and fires the completion hook.
func (o *Orchestrator) finish(ctx context.Context, sess *domain.Session, resp domain.TurnResponse, state string) {
	sess.Messages = append(sess.Messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleAssistant,
		Content:   resp.Message,
		Timestamp: time.Now().UTC(),
		RichData:  resp.RichData,
	})
	if len(sess.Messages) > o.maxHistory {
		sess.Messages = sess.Messages[len(sess.Messages)-o.maxHistory:]
	}
	sess.UpdatedAt = time.Now().UTC()

	if err := o.store.Put(ctx, sess); err != nil {
		o.log.Error().Err(err).Str("session", sess.ID).Msg("session save failed")
	}

	event := EventTurnCompleted
	if state == stateErrored {
		event = EventTurnErrored
	}
	o.fire(event, map[string]any{
		"session": sess.ID,
		"state":   state,
	})
	o.log.Info().
		Str("session", sess.ID).
		Str("state", state).
		Msg("turn finished")
}

// errored builds a failure reply without a backend result to normalize.
func (o *Orchestrator) errored(sessionID, msg string) domain.TurnResponse {
	o.fire(EventTurnErrored, map[string]any{"session": sessionID})
	return domain.TurnResponse{
		Success:   false,
		SessionID: sessionID,
		Message:   msg,
		Error:     msg,
	}
}

func (o *Orchestrator) loadSession(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		sess, err := o.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			// Idle sessions restart with a clean slate; stale context
			// ("that order") must not leak into a new conversation.
			if o.idleTimeout > 0 && time.Since(sess.UpdatedAt) > o.idleTimeout {
				o.log.Info().Str("session", sess.ID).Msg("session idle, starting fresh")
				now := time.Now().UTC()
				return &domain.Session{ID: sess.ID, CreatedAt: now, UpdatedAt: now}, nil
			}
			return sess, nil
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	return &domain.Session{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}

func (o *Orchestrator) fire(event string, data map[string]any) {
	if o.hooks != nil {
		o.hooks.Fire(event, data)
	}
}

func clarifyMessage(operation string, verr *domain.ValidationError) string {
	if verr.Field == "customerId" {
		kind := "quote"
		if operation == domain.ActionCreateInvoice {
			kind = "invoice"
		}
		return "Which customer should I create that " + kind + " for? You can give me a name, email, or customer ID."
	}
	return "I need a bit more detail: " + verr.Message
}
