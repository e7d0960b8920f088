// internal/infra/slack/client.go
package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// alreadyReactedErr is the Slack API error returned when the requested
// reaction is already present on the message.
const alreadyReactedErr = "already_reacted"

// Client implements the chat.Client interface using the slack-go library.
type Client struct {
	api *slackapi.Client
}

func NewClient(api *slackapi.Client) *Client {
	return &Client{api: api}
}

// LookupChannelName resolves a channel ID to its display name via
// conversations.info.
func (c *Client) LookupChannelName(ctx context.Context, channelID string) (string, error) {
	info, err := c.api.GetConversationInfoContext(ctx, &slackapi.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch info for channel %s: %w", channelID, err)
	}
	return info.Name, nil
}

// AddReaction attaches an emoji to the given message. Slack rejects
// duplicate reactions with already_reacted; that outcome is a success from
// the caller's point of view and is collapsed to nil here.
func (c *Client) AddReaction(ctx context.Context, channelID, timestamp, emoji string) error {
	err := c.api.AddReactionContext(ctx, emoji, slackapi.NewRefToMessage(channelID, timestamp))
	if err != nil && err.Error() == alreadyReactedErr {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to add reaction %q: %w", emoji, err)
	}
	return nil
}

// PostThreadReply posts text as a reply in the thread rooted at parentTimestamp.
func (c *Client) PostThreadReply(ctx context.Context, channelID, parentTimestamp, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionTS(parentTimestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to post thread reply in channel %s: %w", channelID, err)
	}
	return nil
}

// PostMessage posts a top-level message to the channel.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message to channel %s: %w", channelID, err)
	}
	return nil
}
