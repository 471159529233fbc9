package nlu

import "chatia/models"

// Service classifies one user message against the conversation state.
type Service interface {
	ClassifyAndExtract(userMsg string, state models.ConversationState) models.TurnResult
}

// DefaultService implements Service with the rule-based classifier and
// extractor. It is stateless and safe for concurrent use.
type DefaultService struct {
	// InfoReply is the canned answer returned for INFO messages.
	InfoReply string
}

// ClassifyAndExtract resolves the intent (sticky: once the state carries one,
// later messages keep it) and extracts this message's slots. INFO short-
// circuits with the canned answer and no slots.
func (s *DefaultService) ClassifyAndExtract(userMsg string, state models.ConversationState) models.TurnResult {
	intent := state.Intent
	if intent == models.IntentUnknown {
		intent = DetectIntent(userMsg)
	}
	if intent == models.IntentInfo {
		return models.TurnResult{Intent: models.IntentInfo, Answer: s.InfoReply}
	}
	return models.TurnResult{Intent: intent, Slots: ExtractSlots(userMsg, intent)}
}
