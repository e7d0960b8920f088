package app

import (
	"context"
	"testing"

	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotUserID = "U_BOT"

func editedReport() chat.EditNotification {
	return chat.EditNotification{
		Channel:        "C1",
		Timestamp:      "111.222",
		Text:           "8/5 藤間 休暇 修正済み",
		Author:         "U_HUMAN",
		PreviousAuthor: "U_HUMAN",
	}
}

func TestEditGuard_PostsInvalidationWarning(t *testing.T) {
	fake := &fakeChat{}
	guard := NewEditGuard(fake, testBotUserID, testLogger())

	guard.OnEdit(context.Background(), editedReport())

	require.Len(t, fake.replies, 1)
	assert.Equal(t, "C1", fake.replies[0].channel)
	assert.Equal(t, "111.222", fake.replies[0].parentTimestamp)
	assert.Equal(t, InvalidationWarning, fake.replies[0].text)
}

func TestEditGuard_Suppression(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*chat.EditNotification)
	}{
		{
			name:   "edited message authored by the bot",
			mutate: func(n *chat.EditNotification) { n.Author = testBotUserID },
		},
		{
			name:   "previous version authored by the bot",
			mutate: func(n *chat.EditNotification) { n.PreviousAuthor = testBotUserID },
		},
		{
			name:   "edited text is empty",
			mutate: func(n *chat.EditNotification) { n.Text = "   " },
		},
		{
			name:   "edit to a threaded reply",
			mutate: func(n *chat.EditNotification) { n.ThreadRoot = "000.111" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeChat{}
			guard := NewEditGuard(fake, testBotUserID, testLogger())

			n := editedReport()
			tt.mutate(&n)
			guard.OnEdit(context.Background(), n)

			assert.Empty(t, fake.replies, "suppressed edit must produce no outbound message")
		})
	}
}

func TestEditGuard_ThreadRootSelfIsTopLevel(t *testing.T) {
	// A message that roots its own thread is still a top-level report.
	fake := &fakeChat{}
	guard := NewEditGuard(fake, testBotUserID, testLogger())

	n := editedReport()
	n.ThreadRoot = n.Timestamp
	guard.OnEdit(context.Background(), n)

	assert.Len(t, fake.replies, 1)
}
