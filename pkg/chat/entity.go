package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type MessageKind string

const (
	KindText           MessageKind = "text"
	KindMeetingSummary MessageKind = "meetingSummary"
)

// Message is one visible entry in a widget's conversation. The list is
// append-only for the widget's lifetime and is never persisted.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	Text      string      `json:"text"`
	Sender    Sender      `json:"sender"`
	Kind      MessageKind `json:"kind"`
	Timestamp time.Time   `json:"timestamp"`
}

func newMessage(sender Sender, kind MessageKind, text string) Message {
	return Message{
		ID:        uuid.New(),
		Text:      text,
		Sender:    sender,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// APIStatus is the externally observable provider availability flag.
type APIStatus string

const (
	StatusChecking    APIStatus = "checking"
	StatusAvailable   APIStatus = "available"
	StatusUnavailable APIStatus = "unavailable"
)

// MeetingRequest is transient form state; it exists only until submission,
// when it becomes a meetingSummary message and is discarded.
type MeetingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Purpose       string `json:"purpose"`
	PreferredTime string `json:"preferredTime"`
	Notes         string `json:"notes,omitempty"`
}

// Validate checks required fields locally. A failed validation never reaches
// the provider.
func (m MeetingRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(m.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(m.Purpose) == "" {
		missing = append(missing, "purpose")
	}
	if strings.TrimSpace(m.PreferredTime) == "" {
		missing = append(missing, "preferredTime")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if !strings.Contains(m.Email, "@") {
		return &ValidationError{Fields: []string{"email"}}
	}
	return nil
}

// ValidationError lists the meeting form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Errors surfaced by widget operations.
var (
	ErrWidgetClosed  = errors.New("chat widget is closed")
	ErrSendInFlight  = errors.New("a previous message is still being processed")
	ErrWidgetUnknown = errors.New("unknown chat widget")
)
