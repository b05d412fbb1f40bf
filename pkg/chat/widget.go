package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-server/pkg/content"
	"portfolio-server/pkg/llm"
)

// User-visible error wordings. Raw provider errors never reach the visitor.
const (
	degradedReply = "The assistant is temporarily unavailable. You can still browse the site, and the scheduling form works if you'd like to set up a conversation."
	retryReply    = "Sorry, something went wrong while answering. Please try sending your message again."
)

// WidgetState is the read-only view consumed by the UI.
type WidgetState struct {
	ID                  uuid.UUID `json:"id"`
	Messages            []Message `json:"messages"`
	IsLoading           bool      `json:"isLoading"`
	APIStatus           APIStatus `json:"apiStatus"`
	IsSchedulingMeeting bool      `json:"isSchedulingMeeting"`
}

// Widget orchestrates one visitor's chat: the message list, the single
// in-flight send rule, the availability probe, meeting scheduling and the
// use-after-close guard. Conversation state lives only in memory and dies
// with the widget.
type Widget struct {
	ID uuid.UUID

	agg     *content.Aggregator
	session *Session
	status  *StatusTracker

	mu         sync.Mutex
	messages   []Message
	inFlight   bool
	closed     bool
	scheduling bool
	lastActive time.Time
}

func NewWidget(agg *content.Aggregator, model llm.ChatModel, primaryModel, secondaryModel string, status *StatusTracker) *Widget {
	return &Widget{
		ID:         uuid.New(),
		agg:        agg,
		session:    NewSession(model, primaryModel, secondaryModel, status),
		status:     status,
		lastActive: time.Now(),
	}
}

// Start triggers the content fetch and the silent connectivity probe. Both
// outlive the request that opened the widget, so they run on their own
// contexts rather than the caller's. The probe is skipped only when the flag
// was pinned at startup (missing credential); a transiently unavailable
// provider gets probed again on every open so availability can recover.
// Probe failures set the flag but never produce a message.
func (w *Widget) Start() {
	w.agg.Fetch(context.Background())
	if w.status.Pinned() {
		return
	}
	go func() {
		probeCtx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		w.session.Probe(probeCtx)
	}()
}

// SendMessage appends the user's message, asks the session (or the fallback
// engine when the provider is unavailable) for a reply and appends it. While
// a send is outstanding further sends are rejected with ErrSendInFlight, so
// replies can never interleave. Meeting intent surfaces the scheduling form
// regardless of whether the provider call succeeds.
func (w *Widget) SendMessage(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return Message{}, ErrWidgetClosed
	}
	if w.inFlight {
		w.mu.Unlock()
		return Message{}, ErrSendInFlight
	}
	w.inFlight = true
	w.lastActive = time.Now()
	w.messages = append(w.messages, newMessage(SenderUser, KindText, text))
	if Classify(text).Meeting {
		w.scheduling = true
	}
	w.mu.Unlock()

	reply := w.answer(ctx, text)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if w.closed {
		// The widget was closed while the call was outstanding; the result
		// must not be applied to disposed state.
		return Message{}, ErrWidgetClosed
	}
	w.messages = append(w.messages, reply)
	return reply, nil
}

// answer produces the bot reply without holding the widget lock.
func (w *Widget) answer(ctx context.Context, text string) Message {
	if w.status.Status() == StatusUnavailable {
		return newMessage(SenderBot, KindText, FallbackResponse(text))
	}
	snap := w.agg.Snapshot()
	w.session.EnsureSeeded(snap)
	reply, err := w.session.Send(ctx, text)
	if err == nil {
		return newMessage(SenderBot, KindText, reply)
	}
	if llm.IsConfiguration(err) || llm.IsQuota(err) || llm.IsModelUnavailable(err) {
		return newMessage(SenderBot, KindText, degradedReply)
	}
	return newMessage(SenderBot, KindText, retryReply)
}

// SubmitMeeting validates the form locally and, on success, records a
// meeting summary plus a confirmation synthesized from the personal details.
// No provider call is involved.
func (w *Widget) SubmitMeeting(req MeetingRequest) (Message, error) {
	if err := req.Validate(); err != nil {
		return Message{}, err
	}

	summary := fmt.Sprintf("Meeting request from %s (%s)\nPurpose: %s\nPreferred time: %s",
		req.Name, req.Email, req.Purpose, req.PreferredTime)
	if strings.TrimSpace(req.Notes) != "" {
		summary += "\nNotes: " + req.Notes
	}

	confirmation := w.confirmationText(req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return Message{}, ErrWidgetClosed
	}
	w.lastActive = time.Now()
	w.messages = append(w.messages, newMessage(SenderUser, KindMeetingSummary, summary))
	msg := newMessage(SenderBot, KindText, confirmation)
	w.messages = append(w.messages, msg)
	w.scheduling = false
	return msg, nil
}

func (w *Widget) confirmationText(req MeetingRequest) string {
	text := fmt.Sprintf("Thanks %s! Your meeting request about %q for %s has been noted.",
		req.Name, req.Purpose, req.PreferredTime)
	pd := w.agg.Snapshot().Slices[content.CategoryPersonalDetails].Doc.PersonalDetails
	if pd != nil && strings.TrimSpace(pd.Email) != "" {
		text += fmt.Sprintf(" You'll receive a confirmation at %s from %s.", req.Email, pd.Email)
	} else {
		text += fmt.Sprintf(" You'll receive a confirmation at %s.", req.Email)
	}
	return text
}

// SetScheduling toggles the meeting form (the UI may dismiss it).
func (w *Widget) SetScheduling(open bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scheduling = open
}

// Close marks the widget disposed. Results of in-flight operations arriving
// afterwards are discarded.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *Widget) State() WidgetState {
	w.mu.Lock()
	defer w.mu.Unlock()
	msgs := make([]Message, len(w.messages))
	copy(msgs, w.messages)
	return WidgetState{
		ID:                  w.ID,
		Messages:            msgs,
		IsLoading:           w.agg.Snapshot().IsAnyLoading,
		APIStatus:           w.status.Status(),
		IsSchedulingMeeting: w.scheduling,
	}
}

func (w *Widget) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}
