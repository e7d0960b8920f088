package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"
	"github.com/fujimatsutomu/slack-kintai/internal/domain/report"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChat records every outbound request so tests can assert on order.
type fakeChat struct {
	channelNames map[string]string
	lookupErr    error
	lookupCalls  int
	reactErr     map[string]error // emoji -> error returned after recording
	reactions    []reactionCall
	replies      []replyCall
	posts        []string
}

type reactionCall struct {
	channel, timestamp, emoji string
}

type replyCall struct {
	channel, parentTimestamp, text string
}

func (f *fakeChat) LookupChannelName(_ context.Context, channelID string) (string, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	return f.channelNames[channelID], nil
}

func (f *fakeChat) AddReaction(_ context.Context, channelID, timestamp, emoji string) error {
	f.reactions = append(f.reactions, reactionCall{channelID, timestamp, emoji})
	if err := f.reactErr[emoji]; err != nil {
		return err
	}
	return nil
}

func (f *fakeChat) PostThreadReply(_ context.Context, channelID, parentTimestamp, text string) error {
	f.replies = append(f.replies, replyCall{channelID, parentTimestamp, text})
	return nil
}

func (f *fakeChat) PostMessage(_ context.Context, channelID, text string) error {
	f.posts = append(f.posts, text)
	return nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

func emojiSequence(calls []reactionCall) []string {
	var out []string
	for _, c := range calls {
		out = append(out, c.emoji)
	}
	return out
}

func newTestReportService(c chat.Client, reference time.Time) *ReportService {
	parser := report.NewLineParser(PlannedLeaveMarker)
	svc := NewReportService(report.NewValidator(parser), c, DefaultAnnotationConfig(), testLogger())
	svc.now = func() time.Time { return reference }
	return svc
}

func augustFirst2025() time.Time {
	// 2025-08-05 is a Tuesday and lies in the future of this reference.
	return time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)
}

func TestReportService_ValidSingleLine(t *testing.T) {
	fake := &fakeChat{}
	svc := newTestReportService(fake, augustFirst2025())

	svc.HandleReport(context.Background(), chat.Message{
		Channel:   "C1",
		Timestamp: "111.222",
		Text:      "8/5 藤間 休暇 体調不良",
	})

	assert.Equal(t, []string{"ka", "fast_forward", "white_check_mark"}, emojiSequence(fake.reactions))
	assert.Empty(t, fake.replies, "a valid report gets no thread reply")
}

func TestReportService_ValidMultiLineOrder(t *testing.T) {
	fake := &fakeChat{}
	svc := newTestReportService(fake, augustFirst2025())

	svc.HandleReport(context.Background(), chat.Message{
		Channel:   "C1",
		Timestamp: "111.222",
		Text:      "8/5 藤間 休暇 体調不良\n8/6 佐藤 午前休 計画休",
	})

	assert.Equal(t,
		[]string{"ka", "fast_forward", "sui", "fast_forward", "white_check_mark"},
		emojiSequence(fake.reactions),
		"per-line stamps in line order, summary last")
}

func TestReportService_PastDate(t *testing.T) {
	fake := &fakeChat{}
	svc := newTestReportService(fake, time.Date(2025, time.August, 10, 10, 0, 0, 0, time.UTC))

	svc.HandleReport(context.Background(), chat.Message{
		Channel:   "C1",
		Timestamp: "111.222",
		Text:      "8/5 藤間 休暇",
	})

	assert.Equal(t, []string{"ka", "rewind", "white_check_mark"}, emojiSequence(fake.reactions))
}

func TestReportService_InvalidReport(t *testing.T) {
	fake := &fakeChat{}
	svc := newTestReportService(fake, augustFirst2025())

	svc.HandleReport(context.Background(), chat.Message{
		Channel:   "C1",
		Timestamp: "111.222",
		Text:      "13/5 藤間 休暇",
	})

	assert.Equal(t, []string{"x"}, emojiSequence(fake.reactions))
	require.Len(t, fake.replies, 1)
	assert.Equal(t, "111.222", fake.replies[0].parentTimestamp)
	assert.Equal(t, GuidanceText, fake.replies[0].text)
}

func TestReportService_FailFastKeepsEarlierStamps(t *testing.T) {
	fake := &fakeChat{}
	svc := newTestReportService(fake, augustFirst2025())

	svc.HandleReport(context.Background(), chat.Message{
		Channel:   "C1",
		Timestamp: "111.222",
		Text:      "8/5 藤間 休暇\nこれは不正な行\n8/7 鈴木 休暇",
	})

	// Exactly one weekday+direction pair (line 1) before the fail emoji;
	// line 3 is never stamped.
	assert.Equal(t, []string{"ka", "fast_forward", "x"}, emojiSequence(fake.reactions))
	require.Len(t, fake.replies, 1)
	assert.Equal(t, GuidanceText, fake.replies[0].text)
}

func TestReportService_ReactionFailureDoesNotAbortSequence(t *testing.T) {
	fake := &fakeChat{reactErr: map[string]error{"ka": errors.New("rate limited")}}
	svc := newTestReportService(fake, augustFirst2025())

	svc.HandleReport(context.Background(), chat.Message{
		Channel:   "C1",
		Timestamp: "111.222",
		Text:      "8/5 藤間 休暇",
	})

	// The failed weekday stamp must not block the direction or pass emoji.
	assert.Equal(t, []string{"ka", "fast_forward", "white_check_mark"}, emojiSequence(fake.reactions))
}
