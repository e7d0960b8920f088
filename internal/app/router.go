package app

import (
	"context"
	"strings"

	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"

	"github.com/sirupsen/logrus"
)

// FreeTalkTrigger is the substring that earns a message in the free-talk
// channel an acknowledgement reaction.
const FreeTalkTrigger = "OK"

// FreeTalkEmoji is the reaction added when the trigger matches.
const FreeTalkEmoji = "eyes"

// Router dispatches inbound events to the free-talk handler or the
// attendance pipeline based on the channel's display name. Mapping channel
// identity to a named pipeline in one place keeps the name literals from
// drifting across handlers.
type Router struct {
	chat              chat.Client
	reports           *ReportService
	editGuard         *EditGuard
	freeTalkChannel   string
	attendanceChannel string
	logger            *logrus.Entry
}

func NewRouter(
	c chat.Client,
	reports *ReportService,
	editGuard *EditGuard,
	freeTalkChannel string,
	attendanceChannel string,
	logger *logrus.Entry,
) *Router {
	return &Router{
		chat:              c,
		reports:           reports,
		editGuard:         editGuard,
		freeTalkChannel:   freeTalkChannel,
		attendanceChannel: attendanceChannel,
		logger:            logger,
	}
}

// HandleMessage routes one inbound message. Bot-origin, subtyped and blank
// messages are not reports and produce no side effects at all. A failed
// channel lookup aborts handling of this message only; the error never
// propagates to the event dispatcher.
func (r *Router) HandleMessage(ctx context.Context, msg chat.Message) {
	if msg.BotOrigin || msg.SubType != "" || strings.TrimSpace(msg.Text) == "" {
		return
	}

	name, err := r.chat.LookupChannelName(ctx, msg.Channel)
	if err != nil {
		r.logger.Errorf("Failed to look up channel %s: %v", msg.Channel, err)
		return
	}

	switch name {
	case r.freeTalkChannel:
		r.handleFreeTalk(ctx, msg)
	case r.attendanceChannel:
		r.reports.HandleReport(ctx, msg)
	}
}

// HandleEdit routes an edit notification to the edit guard. Only edits in
// the attendance channel are of interest.
func (r *Router) HandleEdit(ctx context.Context, n chat.EditNotification) {
	name, err := r.chat.LookupChannelName(ctx, n.Channel)
	if err != nil {
		r.logger.Errorf("Failed to look up channel %s: %v", n.Channel, err)
		return
	}
	if name != r.attendanceChannel {
		return
	}
	r.editGuard.OnEdit(ctx, n)
}

func (r *Router) handleFreeTalk(ctx context.Context, msg chat.Message) {
	if !strings.Contains(msg.Text, FreeTalkTrigger) {
		return
	}
	if err := r.chat.AddReaction(ctx, msg.Channel, msg.Timestamp, FreeTalkEmoji); err != nil {
		r.logger.Errorf("Failed to add free-talk reaction to message %s: %v", msg.Timestamp, err)
	}
}
