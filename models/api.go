package models

// ChatRequest is the payload for the free-form /chat endpoint.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant reply for /chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// AssistantRequest is one stateless turn: the message plus whatever state the
// caller accumulated on previous turns.
type AssistantRequest struct {
	Message string             `json:"message" binding:"required"`
	State   *ConversationState `json:"state,omitempty"`
}

// AssistantResponse is the outcome of an assistant turn.
type AssistantResponse struct {
	Intent        Intent            `json:"intent"`
	Answer        string            `json:"answer,omitempty"`
	Reply         string            `json:"reply"`
	MissingFields []string          `json:"missing_fields"`
	Complete      bool              `json:"complete"`
	State         ConversationState `json:"state"`
}

// SessionTurnRequest is a turn against a server-held session (voice calls
// cannot carry state between webhooks).
type SessionTurnRequest struct {
	Message string `json:"message" binding:"required"`
}

// StructuredOrderItem is one line of an already-structured order submission.
type StructuredOrderItem struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Notes    string `json:"notes,omitempty"`
}

// OrderRequest is a fully structured order posted by a frontend, bypassing
// the slot-filling flow.
type OrderRequest struct {
	CustomerName  string                `json:"customer_name,omitempty"`
	CustomerPhone string                `json:"customer_phone,omitempty"`
	CustomerEmail string                `json:"customer_email,omitempty"`
	Items         []StructuredOrderItem `json:"items" binding:"required,min=1,dive"`
	Delivery      string                `json:"delivery,omitempty"` // "pickup" or "delivery"
	Address       string                `json:"address,omitempty"`
	DesiredTime   string                `json:"desired_time,omitempty"` // e.g. "2025-09-10 19:30"
	Notes         string                `json:"notes,omitempty"`
}

// ReservationRequest is a fully structured reservation submission.
type ReservationRequest struct {
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	People        int    `json:"people" binding:"required,gt=0"`
	Date          string `json:"date" binding:"required"` // "2025-09-10"
	Time          string `json:"time" binding:"required"` // "19:30"
	Notes         string `json:"notes,omitempty"`
}

// SpeakRequest is the payload for direct text-to-speech.
type SpeakRequest struct {
	Text string `json:"text" binding:"required"`
}

// SpeakResponse points at the synthesized MP3.
type SpeakResponse struct {
	AudioURL string `json:"audio_url"`
}

// VoiceChatResponse is the full voice round trip: what was heard, what the
// assistant said, and where the spoken reply can be fetched.
type VoiceChatResponse struct {
	UserText string `json:"user_text"`
	BotText  string `json:"bot_text"`
	AudioURL string `json:"audio_url"`
}
