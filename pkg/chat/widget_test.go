package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/pkg/content"
	"portfolio-server/pkg/llm"
)

// memRepo is an in-memory content store for widget tests.
type memRepo struct {
	mu   sync.Mutex
	docs map[content.Category]content.Document
}

func (r *memRepo) GetDocument(ctx context.Context, c content.Category) (content.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[c]; ok {
		return d, nil
	}
	return content.DefaultDocument(c), nil
}

func (r *memRepo) ReplaceDocument(ctx context.Context, doc content.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.docs == nil {
		r.docs = make(map[content.Category]content.Document)
	}
	r.docs[doc.Category] = doc
	return nil
}

func settledAggregator(t *testing.T, repo content.Repository) *content.Aggregator {
	t.Helper()
	agg := content.NewAggregator(repo, time.Second)
	agg.Fetch(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, agg.WaitSettled(ctx))
	return agg
}

func newTestWidget(t *testing.T, repo content.Repository, fn func(string, []llm.Message) (string, error)) (*Widget, *fakeModel, *StatusTracker) {
	t.Helper()
	if repo == nil {
		repo = &memRepo{}
	}
	model := &fakeModel{fn: fn}
	status := NewStatusTracker()
	w := NewWidget(settledAggregator(t, repo), model, "primary-model", "secondary-model", status)
	return w, model, status
}

func TestSendMessage_RejectsSecondSendWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	w, _, _ := newTestWidget(t, nil, func(string, []llm.Message) (string, error) {
		entered <- struct{}{}
		<-release
		return "slow reply", nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := w.SendMessage(context.Background(), "first message")
		done <- err
	}()

	<-entered
	_, err := w.SendMessage(context.Background(), "second message")
	assert.ErrorIs(t, err, ErrSendInFlight)

	close(release)
	require.NoError(t, <-done)

	state := w.State()
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "first message", state.Messages[0].Text)
	assert.Equal(t, SenderUser, state.Messages[0].Sender)
	assert.Equal(t, "slow reply", state.Messages[1].Text)
	assert.Equal(t, SenderBot, state.Messages[1].Sender)
}

func TestSendMessage_ClosedWidget(t *testing.T) {
	w, model, _ := newTestWidget(t, nil, nil)
	w.Close()

	_, err := w.SendMessage(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrWidgetClosed)
	assert.Zero(t, model.callCount())
}

func TestClose_DiscardsInFlightReply(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	w, _, _ := newTestWidget(t, nil, func(string, []llm.Message) (string, error) {
		entered <- struct{}{}
		<-release
		return "late reply", nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := w.SendMessage(context.Background(), "hello")
		done <- err
	}()

	<-entered
	w.Close()
	close(release)

	assert.ErrorIs(t, <-done, ErrWidgetClosed)
	for _, msg := range w.State().Messages {
		assert.NotEqual(t, "late reply", msg.Text, "a reply arriving after Close must be dropped")
	}
}

func TestSendMessage_MeetingIntentOpensSchedulingForm(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, nil)

	_, err := w.SendMessage(context.Background(), "Can we schedule a call?")

	require.NoError(t, err)
	assert.True(t, w.State().IsSchedulingMeeting)

	w.SetScheduling(false)
	assert.False(t, w.State().IsSchedulingMeeting)
}

func TestSendMessage_FallbackWhenUnavailable(t *testing.T) {
	w, model, status := newTestWidget(t, nil, nil)
	status.PinUnavailable()

	reply, err := w.SendMessage(context.Background(), "Can I schedule a call to discuss your skills?")

	require.NoError(t, err)
	assert.Equal(t, fallbackMeeting, reply.Text)
	assert.Zero(t, model.callCount(), "an unavailable provider must not be called")
	assert.True(t, w.State().IsSchedulingMeeting, "meeting intent still opens the form")
}

func TestSendMessage_DegradedReplyOnConfigurationError(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, func(string, []llm.Message) (string, error) {
		return "", fmt.Errorf("%w: 401", llm.ErrConfiguration)
	})

	reply, err := w.SendMessage(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, degradedReply, reply.Text)
	assert.Equal(t, SenderBot, reply.Sender)
}

func TestSendMessage_RetryReplyOnTransientError(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, func(string, []llm.Message) (string, error) {
		return "", fmt.Errorf("%w: connection reset", llm.ErrTransient)
	})

	reply, err := w.SendMessage(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, retryReply, reply.Text)
}

func TestSendMessage_SeedsWithPortfolioContext(t *testing.T) {
	repo := &memRepo{docs: map[content.Category]content.Document{
		content.CategoryProjects: {
			Category: content.CategoryProjects,
			Projects: []content.Project{{
				Title:       "ScapeDBM",
				Description: "Landscaping Services Landing Page",
				URL:         "https://scapedbm.com",
			}},
		},
	}}
	w, model, _ := newTestWidget(t, repo, nil)

	_, err := w.SendMessage(context.Background(), "What projects have you built?")

	require.NoError(t, err)
	require.Equal(t, 1, model.callCount())
	seeded := model.call(0).history
	require.NotEmpty(t, seeded)
	assert.Contains(t, seeded[0].Content, "- ScapeDBM: Landscaping Services Landing Page (https://scapedbm.com)")
}

func TestStart_ProbeIsSilent(t *testing.T) {
	w, model, status := newTestWidget(t, nil, nil)

	w.Start()

	assert.Eventually(t, func() bool {
		return status.Status() == StatusAvailable
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, w.State().Messages, "the probe must never produce a visible message")
	assert.Equal(t, 1, model.callCount())
}

func TestStart_SkipsProbeWhenPinnedUnavailable(t *testing.T) {
	w, model, status := newTestWidget(t, nil, nil)
	status.PinUnavailable()

	w.Start()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, model.callCount())
	assert.Equal(t, StatusUnavailable, w.State().APIStatus)
}

func TestStart_ProbesAgainAfterTransientUnavailable(t *testing.T) {
	repo := &memRepo{}
	agg := settledAggregator(t, repo)
	status := NewStatusTracker()
	status.MarkUnavailable()

	// The provider has recovered by the time the next widget opens.
	model := &fakeModel{}
	w := NewWidget(agg, model, "primary-model", "secondary-model", status)
	w.Start()

	assert.Eventually(t, func() bool {
		return status.Status() == StatusAvailable
	}, time.Second, 5*time.Millisecond, "a fresh widget's probe must be able to clear a transient flag")
	assert.Equal(t, 1, model.callCount())

	reply, err := w.SendMessage(context.Background(), "What projects have you built?")
	require.NoError(t, err)
	assert.NotEqual(t, fallbackProject, reply.Text, "a recovered provider answers live, not canned")
}

func TestStart_FetchOutlivesTheOpeningRequest(t *testing.T) {
	// The aggregator was never warmed; Start must settle it on its own
	// context, not one tied to the request that opened the widget.
	agg := content.NewAggregator(&memRepo{}, time.Second)
	w := NewWidget(agg, &fakeModel{}, "primary-model", "secondary-model", NewStatusTracker())

	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, agg.WaitSettled(ctx))
	for c, st := range agg.Snapshot().Slices {
		assert.NoError(t, st.Err, "category %s", c)
	}
}

func TestSubmitMeeting_ValidationFailure(t *testing.T) {
	w, model, _ := newTestWidget(t, nil, nil)

	_, err := w.SubmitMeeting(MeetingRequest{
		Name:          "Jane Doe",
		Email:         "",
		Purpose:       "Backend contract",
		PreferredTime: "next week",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email"}, verr.Fields)
	assert.Empty(t, w.State().Messages, "a failed validation must not record a summary")
	assert.Zero(t, model.callCount())
}

func TestSubmitMeeting_RejectsMalformedEmail(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, nil)

	_, err := w.SubmitMeeting(MeetingRequest{
		Name:          "Jane Doe",
		Email:         "not-an-email",
		Purpose:       "Backend contract",
		PreferredTime: "next week",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email"}, verr.Fields)
}

func TestSubmitMeeting_RecordsSummaryAndConfirmation(t *testing.T) {
	repo := &memRepo{docs: map[content.Category]content.Document{
		content.CategoryPersonalDetails: {
			Category:        content.CategoryPersonalDetails,
			PersonalDetails: &content.PersonalDetails{Email: "peter@example.com"},
		},
	}}
	w, model, _ := newTestWidget(t, repo, nil)
	w.SetScheduling(true)

	confirmation, err := w.SubmitMeeting(MeetingRequest{
		Name:          "Jane Doe",
		Email:         "jane@client.example",
		Purpose:       "Backend contract",
		PreferredTime: "next Tuesday",
		Notes:         "prefer mornings",
	})

	require.NoError(t, err)
	state := w.State()
	require.Len(t, state.Messages, 2)

	summary := state.Messages[0]
	assert.Equal(t, SenderUser, summary.Sender)
	assert.Equal(t, KindMeetingSummary, summary.Kind)
	assert.Contains(t, summary.Text, "Jane Doe")
	assert.Contains(t, summary.Text, "jane@client.example")
	assert.Contains(t, summary.Text, "Backend contract")
	assert.Contains(t, summary.Text, "prefer mornings")

	assert.Equal(t, SenderBot, confirmation.Sender)
	assert.Contains(t, confirmation.Text, "Jane Doe")
	assert.Contains(t, confirmation.Text, "jane@client.example")
	assert.Contains(t, confirmation.Text, "peter@example.com")

	assert.False(t, state.IsSchedulingMeeting)
	assert.Zero(t, model.callCount(), "meeting submission never touches the provider")
}

func TestSubmitMeeting_AfterClose(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, nil)
	w.Close()

	_, err := w.SubmitMeeting(MeetingRequest{
		Name:          "Jane Doe",
		Email:         "jane@client.example",
		Purpose:       "Backend contract",
		PreferredTime: "next week",
	})

	assert.ErrorIs(t, err, ErrWidgetClosed)
}

func TestManager_OpenGetClose(t *testing.T) {
	agg := settledAggregator(t, &memRepo{})
	m := NewManager(agg, &fakeModel{}, "primary-model", "secondary-model", NewStatusTracker(), time.Hour)

	w := m.Open()
	got, err := m.Get(w.ID)
	require.NoError(t, err)
	assert.Same(t, w, got)

	require.NoError(t, m.Close(w.ID))
	_, err = m.Get(w.ID)
	assert.ErrorIs(t, err, ErrWidgetUnknown)
	assert.ErrorIs(t, m.Close(w.ID), ErrWidgetUnknown)

	_, err = w.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrWidgetClosed)
}

func TestManager_SweepClosesIdleWidgets(t *testing.T) {
	agg := settledAggregator(t, &memRepo{})
	m := NewManager(agg, &fakeModel{}, "primary-model", "secondary-model", NewStatusTracker(), time.Millisecond)

	w := m.Open()
	time.Sleep(10 * time.Millisecond)
	m.sweep()

	_, err := m.Get(w.ID)
	assert.ErrorIs(t, err, ErrWidgetUnknown)
	_, err = w.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrWidgetClosed)
}

func TestManager_SweepKeepsActiveWidgets(t *testing.T) {
	agg := settledAggregator(t, &memRepo{})
	m := NewManager(agg, &fakeModel{}, "primary-model", "secondary-model", NewStatusTracker(), time.Hour)

	w := m.Open()
	m.sweep()

	got, err := m.Get(w.ID)
	require.NoError(t, err)
	assert.Same(t, w, got)
}

func TestWidgetState_IsACopy(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, nil)
	_, err := w.SendMessage(context.Background(), "hello")
	require.NoError(t, err)

	state := w.State()
	state.Messages[0].Text = "mutated"

	assert.Equal(t, "hello", w.State().Messages[0].Text)
}

func TestSendMessage_TrimsWhitespace(t *testing.T) {
	w, _, _ := newTestWidget(t, nil, nil)

	_, err := w.SendMessage(context.Background(), "  hello  ")

	require.NoError(t, err)
	assert.Equal(t, "hello", w.State().Messages[0].Text)
}
