package chat

import "context"

// Client defines the chat-platform operations the application needs.
// This keeps the application logic decoupled from the specific Slack library.
type Client interface {
	// LookupChannelName resolves a channel ID to its display name.
	LookupChannelName(ctx context.Context, channelID string) (string, error)

	// AddReaction attaches an emoji to the message identified by channel and
	// timestamp. An annotation that is already present is a success, not an
	// error; implementations must collapse the platform's duplicate signal
	// into a nil return.
	AddReaction(ctx context.Context, channelID, timestamp, emoji string) error

	// PostThreadReply posts text as a threaded reply under the given parent.
	PostThreadReply(ctx context.Context, channelID, parentTimestamp, text string) error

	// PostMessage posts a top-level message to a channel.
	PostMessage(ctx context.Context, channelID, text string) error
}
