package app

import (
	"context"
	"time"

	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"
	"github.com/fujimatsutomu/slack-kintai/internal/domain/report"

	"github.com/sirupsen/logrus"
)

// PlannedLeaveMarker is the literal trailing token that flags a scheduled
// (as opposed to unscheduled) leave line.
const PlannedLeaveMarker = "計画休"

// GuidanceText is posted as a threaded reply under a report that failed
// validation. The wording is part of the bot's contract with the channel.
const GuidanceText = "勤怠連絡のフォーマットが正しくありません。\n" +
	"「月/日 名前 区分 [備考] [計画休]」の形式で1行ずつ記載してください。\n" +
	"例: 8/5 藤間 休暇 体調不良"

// AnnotationConfig carries the fixed emoji vocabulary used to annotate
// reports. It is immutable after construction; services receive it by value.
type AnnotationConfig struct {
	WeekdayEmojis [7]string // Monday-first
	PastEmoji     string
	FutureEmoji   string
	PassEmoji     string
	FailEmoji     string
}

// DefaultAnnotationConfig returns the emoji vocabulary this workspace uses.
func DefaultAnnotationConfig() AnnotationConfig {
	return AnnotationConfig{
		WeekdayEmojis: [7]string{"getsu", "ka", "sui", "moku", "kin", "do", "nichi"},
		PastEmoji:     "rewind",
		FutureEmoji:   "fast_forward",
		PassEmoji:     "white_check_mark",
		FailEmoji:     "x",
	}
}

// ReportService validates attendance reports and annotates them with emoji
// reactions. For a valid report each line gets a weekday emoji and a
// past/future emoji in line order, followed by a single pass emoji; an
// invalid report gets a fail emoji and a threaded guidance message.
type ReportService struct {
	validator *report.Validator
	chat      chat.Client
	cfg       AnnotationConfig
	logger    *logrus.Entry
	now       func() time.Time
}

func NewReportService(v *report.Validator, c chat.Client, cfg AnnotationConfig, logger *logrus.Entry) *ReportService {
	return &ReportService{
		validator: v,
		chat:      c,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleReport runs the full pipeline for one attendance-channel message.
// It never returns an error: transport failures are logged and the remaining
// annotation requests still run, so a flaky reactions call cannot leave a
// report without its summary emoji.
func (s *ReportService) HandleReport(ctx context.Context, msg chat.Message) {
	verdict := s.validator.Validate(msg.Text, s.now())

	// Lines validated before any failure keep their stamps; the summary
	// emoji always goes last so the visual order matches the line order.
	for _, entry := range verdict.Entries {
		s.react(ctx, msg, s.cfg.WeekdayEmojis[entry.Date.Weekday])
		s.react(ctx, msg, s.directionEmoji(entry.Date.Direction))
	}

	if verdict.AllValid {
		s.logger.WithField("ts", msg.Timestamp).Infof("Report valid with %d line(s).", len(verdict.Entries))
		s.react(ctx, msg, s.cfg.PassEmoji)
		return
	}

	s.logger.WithField("ts", msg.Timestamp).Info("Report failed validation.")
	s.react(ctx, msg, s.cfg.FailEmoji)
	if err := s.chat.PostThreadReply(ctx, msg.Channel, msg.Timestamp, GuidanceText); err != nil {
		s.logger.Errorf("Failed to post guidance reply for message %s: %v", msg.Timestamp, err)
	}
}

func (s *ReportService) directionEmoji(d report.Direction) string {
	if d == report.DirectionPast {
		return s.cfg.PastEmoji
	}
	return s.cfg.FutureEmoji
}

func (s *ReportService) react(ctx context.Context, msg chat.Message, emoji string) {
	if err := s.chat.AddReaction(ctx, msg.Channel, msg.Timestamp, emoji); err != nil {
		s.logger.Errorf("Failed to add reaction %q to message %s: %v", emoji, msg.Timestamp, err)
	}
}
