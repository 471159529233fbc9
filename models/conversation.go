package models

// Intent is the classified purpose of a user message. The set is closed:
// no dynamic intents are ever created.
type Intent string

const (
	IntentReservation Intent = "RESERVATION"
	IntentOrder       Intent = "ORDER"
	IntentAppointment Intent = "APPOINTMENT"
	IntentInfo        Intent = "INFO"
	// IntentUnknown marks a state whose message has not been classified yet.
	IntentUnknown Intent = ""
)

// Contact is the phone/email record behind the "contact" and "customer"
// slots. It counts as filled only when phone or email is non-empty, even if
// the record itself exists.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Filled reports whether the contact is reachable.
func (c *Contact) Filled() bool {
	return c != nil && (c.Phone != "" || c.Email != "")
}

// Best returns the preferred way to reach the contact: phone first, then email.
func (c *Contact) Best() string {
	if c == nil {
		return ""
	}
	if c.Phone != "" {
		return c.Phone
	}
	return c.Email
}

// OrderItem is one "quantity + product" line of an order.
type OrderItem struct {
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	Options     []string `json:"options"`
}

// Slots holds every piece of structured information the extractor can pull
// out of free text. Fields accumulate monotonically across turns: merging
// never clears a value that was set on an earlier turn.
type Slots struct {
	PartySize int    `json:"party_size,omitempty"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD, not calendar-validated
	Time      string `json:"time,omitempty"` // HH:MM
	Name      string `json:"name,omitempty"`

	Contact  *Contact `json:"contact,omitempty"`
	Customer *Contact `json:"customer,omitempty"`

	// Order-only fields.
	Items          []OrderItem `json:"items,omitempty"`
	Mode           string      `json:"mode,omitempty"` // "delivery" or "takeaway"
	TimePreference string      `json:"time_preference,omitempty"`
	Address        string      `json:"address,omitempty"`
	PostalCode     string      `json:"postal_code,omitempty"`
	City           string      `json:"city,omitempty"`

	// Appointment-only fields.
	Service            string `json:"service,omitempty"`
	LocationPreference string `json:"location_preference,omitempty"`

	SpecialRequests string `json:"special_requests,omitempty"`
}

// Merge fills empty fields of s from extracted. Existing values win: slots
// accumulate, extraction never removes or overwrites a previously set slot.
func (s *Slots) Merge(extracted Slots) {
	if s.PartySize == 0 {
		s.PartySize = extracted.PartySize
	}
	if s.Date == "" {
		s.Date = extracted.Date
	}
	if s.Time == "" {
		s.Time = extracted.Time
	}
	if s.Name == "" {
		s.Name = extracted.Name
	}
	s.Contact = mergeContact(s.Contact, extracted.Contact)
	s.Customer = mergeContact(s.Customer, extracted.Customer)
	if len(s.Items) == 0 {
		s.Items = extracted.Items
	}
	if s.Mode == "" {
		s.Mode = extracted.Mode
	}
	if s.TimePreference == "" {
		s.TimePreference = extracted.TimePreference
	}
	if s.Address == "" {
		s.Address = extracted.Address
	}
	if s.PostalCode == "" {
		s.PostalCode = extracted.PostalCode
	}
	if s.City == "" {
		s.City = extracted.City
	}
	if s.Service == "" {
		s.Service = extracted.Service
	}
	if s.LocationPreference == "" {
		s.LocationPreference = extracted.LocationPreference
	}
	if s.SpecialRequests == "" {
		s.SpecialRequests = extracted.SpecialRequests
	}
}

func mergeContact(prev, next *Contact) *Contact {
	if prev == nil {
		return next
	}
	if next == nil {
		return prev
	}
	if prev.Phone == "" {
		prev.Phone = next.Phone
	}
	if prev.Email == "" {
		prev.Email = next.Email
	}
	if prev.Name == "" {
		prev.Name = next.Name
	}
	return prev
}

// ConversationState is the per-conversation view handed back and forth with
// the caller each turn. This backend reads it and returns an updated copy;
// it never persists it durably.
type ConversationState struct {
	Intent Intent `json:"intent,omitempty"`
	Slots  Slots  `json:"slots"`
}

// TurnResult is the classify-and-extract output for a single message.
// For INFO the canned answer is set and Slots is empty; for every other
// intent Slots carries only what this message yielded (caller merges).
type TurnResult struct {
	Intent Intent `json:"intent"`
	Answer string `json:"answer,omitempty"`
	Slots  Slots  `json:"slots"`
}
