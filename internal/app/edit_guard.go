package app

import (
	"context"
	"strings"

	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"

	"github.com/sirupsen/logrus"
)

// InvalidationWarning is the standing notice posted under an edited report.
// Reactions already attached to the old text cannot be reconciled against a
// changed line count, so any edit makes the report untrustworthy as a whole.
const InvalidationWarning = "編集された勤怠連絡は無効です。\n" +
	"編集ではなく、元のメッセージを削除してから再投稿してください。"

// EditGuard watches edits to attendance-channel messages and posts an
// invalidation warning instead of re-validating the new text.
type EditGuard struct {
	chat      chat.Client
	botUserID string
	logger    *logrus.Entry
}

func NewEditGuard(c chat.Client, botUserID string, logger *logrus.Entry) *EditGuard {
	return &EditGuard{
		chat:      c,
		botUserID: botUserID,
		logger:    logger,
	}
}

// OnEdit publishes the invalidation warning under the edited message unless
// one of the suppression rules applies. Suppressed edits are a silent no-op.
func (g *EditGuard) OnEdit(ctx context.Context, n chat.EditNotification) {
	if reason := g.suppressionReason(n); reason != "" {
		g.logger.WithField("ts", n.Timestamp).Debugf("Edit ignored: %s.", reason)
		return
	}

	g.logger.WithField("ts", n.Timestamp).Info("Report edit detected, posting invalidation warning.")
	if err := g.chat.PostThreadReply(ctx, n.Channel, n.Timestamp, InvalidationWarning); err != nil {
		g.logger.Errorf("Failed to post invalidation warning for message %s: %v", n.Timestamp, err)
	}
}

// suppressionReason returns a non-empty reason when the edit must not
// trigger a warning. Checking the previous author prevents a feedback loop
// when the bot's own corrective posts are touched.
func (g *EditGuard) suppressionReason(n chat.EditNotification) string {
	switch {
	case n.Author == g.botUserID:
		return "edited message is the bot's own"
	case n.PreviousAuthor == g.botUserID:
		return "previous version was authored by the bot"
	case strings.TrimSpace(n.Text) == "":
		return "edited text is empty"
	case n.IsThreadedReply():
		return "edited message is a threaded reply, not a top-level report"
	}
	return ""
}
