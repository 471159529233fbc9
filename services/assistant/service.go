package assistant

import (
	"context"
	"fmt"

	"chatia/models"
	"chatia/services/nlu"

	"go.uber.org/zap"
)

// RecapMailer delivers the completed recap to the business inbox.
type RecapMailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TurnOutcome is everything one assistant turn produces: the updated state,
// the text to say back, and whether the interaction is complete.
type TurnOutcome struct {
	Intent        models.Intent            `json:"intent"`
	Answer        string                   `json:"answer,omitempty"`
	Reply         string                   `json:"reply"`
	MissingFields []string                 `json:"missing_fields"`
	Complete      bool                     `json:"complete"`
	State         models.ConversationState `json:"state"`
}

// Service runs slot-filling conversations turn by turn.
type Service interface {
	Turn(ctx context.Context, userText string, state models.ConversationState) (*TurnOutcome, error)
	SessionTurn(ctx context.Context, sessionID, userText string) (*TurnOutcome, error)
}

// DefaultAssistantService implements Service on top of the rule-based NLU.
// Turn is pure apart from the optional recap email; SessionTurn adds the
// redis-held state for callers that cannot carry it themselves.
type DefaultAssistantService struct {
	NLU         nlu.Service
	Store       StateStore
	Mailer      RecapMailer
	NotifyEmail string
	Logger      *zap.Logger
}

var recapSubjects = map[models.Intent]string{
	models.IntentReservation: "Nouvelle réservation",
	models.IntentOrder:       "Nouvelle commande",
	models.IntentAppointment: "Nouveau rendez-vous",
}

// Turn classifies the message, merges the extracted slots into the caller's
// state, and either asks for the first missing field or renders the recap.
// On completion the recap is also mailed to the configured business address.
func (s *DefaultAssistantService) Turn(ctx context.Context, userText string, state models.ConversationState) (*TurnOutcome, error) {
	res := s.NLU.ClassifyAndExtract(userText, state)

	if res.Intent == models.IntentInfo {
		return &TurnOutcome{
			Intent:        models.IntentInfo,
			Answer:        res.Answer,
			Reply:         res.Answer,
			MissingFields: []string{},
			State:         state,
		}, nil
	}

	state.Intent = res.Intent
	state.Slots.Merge(res.Slots)

	missing := nlu.NextMissingSlots(state.Intent, state.Slots)
	outcome := &TurnOutcome{
		Intent:        state.Intent,
		MissingFields: missing,
		State:         state,
	}

	if len(missing) > 0 {
		outcome.Reply = nlu.AskFor(missing[0], state.Intent)
		return outcome, nil
	}

	outcome.Complete = true
	outcome.Reply = nlu.Recap(state.Intent, state.Slots)
	s.dispatchRecap(ctx, state.Intent, outcome.Reply)
	return outcome, nil
}

// SessionTurn is Turn with server-held state. Completed sessions are cleared
// so the next call starts a fresh conversation.
func (s *DefaultAssistantService) SessionTurn(ctx context.Context, sessionID, userText string) (*TurnOutcome, error) {
	state, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load dialog state: %w", err)
	}

	outcome, err := s.Turn(ctx, userText, *state)
	if err != nil {
		return nil, err
	}

	if outcome.Complete {
		if err := s.Store.Clear(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("clear dialog state: %w", err)
		}
		return outcome, nil
	}
	if err := s.Store.Set(ctx, sessionID, &outcome.State); err != nil {
		return nil, fmt.Errorf("save dialog state: %w", err)
	}
	return outcome, nil
}

// dispatchRecap mails the recap when a notification address is configured.
// Mail failures are logged, not surfaced: the caller still gets the recap.
func (s *DefaultAssistantService) dispatchRecap(ctx context.Context, intent models.Intent, recap string) {
	if s.Mailer == nil || s.NotifyEmail == "" {
		return
	}
	subject, ok := recapSubjects[intent]
	if !ok {
		return
	}
	if err := s.Mailer.Send(ctx, s.NotifyEmail, subject, recap); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("failed to send recap email", zap.String("subject", subject), zap.Error(err))
		}
	}
}
