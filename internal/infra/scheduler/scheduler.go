package scheduler

import (
	"context"
	"time"

	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderText is the scheduled nudge posted to the attendance channel.
const ReminderText = "本日の勤怠連絡をお願いします。\n" +
	"フォーマット: 月/日 名前 区分 [備考] [計画休]\n" +
	"例: 8/5 藤間 休暇 体調不良"

// ReminderScheduler posts a recurring reminder to the attendance channel so
// reports arrive before the working day starts.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	chat       chat.Client
	channelID  string
	cronSpec   string
	logger     *logrus.Entry
}

func NewReminderScheduler(
	chatClient chat.Client,
	channelID string, // attendance channel ID to post into
	cronSpec string, // e.g., "0 9 * * 1-5" (9:00 AM on weekdays)
	logger *logrus.Entry,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		chat:       chatClient,
		channelID:  channelID,
		cronSpec:   cronSpec,
		logger:     logger,
	}
}

// Start registers the reminder job and starts the cron engine.
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for attendance reminder.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.chat.PostMessage(ctx, s.channelID, ReminderText); err != nil {
			s.logger.Errorf("Failed to post attendance reminder: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Infof("Reminder scheduler started with spec %q.", s.cronSpec)
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
