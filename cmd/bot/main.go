package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fujimatsutomu/slack-kintai/internal/app"
	"github.com/fujimatsutomu/slack-kintai/internal/domain/report"
	"github.com/fujimatsutomu/slack-kintai/internal/infra/config"
	"github.com/fujimatsutomu/slack-kintai/internal/infra/logger"
	"github.com/fujimatsutomu/slack-kintai/internal/infra/scheduler"
	islack "github.com/fujimatsutomu/slack-kintai/internal/infra/slack"

	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func main() {
	fmt.Println("slack-kintai attendance bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Slack API and Socket Mode clients
	api := slackapi.New(cfg.SlackBotToken, slackapi.OptionAppLevelToken(cfg.SlackAppToken))

	// The edit guard needs the bot's own identity to suppress self-triggered edits.
	authInfo, err := api.AuthTest()
	if err != nil {
		mainLogger.Fatalf("FATAL: Slack auth test failed: %v", err)
	}
	mainLogger.Infof("Authenticated to Slack as %s (user ID %s).", authInfo.User, authInfo.UserID)

	socketClient := socketmode.New(api)
	chatClient := islack.NewClient(api)
	mainLogger.Info("Slack client initialized.")

	// Initialize the attendance pipeline
	parser := report.NewLineParser(app.PlannedLeaveMarker)
	validator := report.NewValidator(parser)
	reportService := app.NewReportService(validator, chatClient, app.DefaultAnnotationConfig(),
		logger.Log.WithField("component", "report_service"))
	mainLogger.Info("Report service initialized.")

	editGuard := app.NewEditGuard(chatClient, authInfo.UserID,
		logger.Log.WithField("component", "edit_guard"))
	mainLogger.Info("Edit guard initialized.")

	router := app.NewRouter(chatClient, reportService, editGuard,
		cfg.FreeTalkChannel, cfg.AttendanceChannel,
		logger.Log.WithField("component", "router"))
	mainLogger.Info("Channel router initialized.")

	// Reminder job is optional: it needs a concrete channel ID to post into.
	var reminder *scheduler.ReminderScheduler
	if cfg.AttendanceChannelID != "" {
		reminder = scheduler.NewReminderScheduler(chatClient, cfg.AttendanceChannelID,
			cfg.CronSpecReminder, logger.Log.WithField("component", "scheduler"))
		if err := reminder.Start(); err != nil {
			mainLogger.Fatalf("FATAL: Could not start reminder scheduler: %v", err)
		}
	} else {
		mainLogger.Info("ATTENDANCE_CHANNEL_ID not set; reminder job disabled.")
	}

	eventLoop := islack.NewEventLoop(socketClient, router,
		logger.Log.WithField("component", "events"))

	mainLogger.Info("Application setup complete. Event loop is starting...")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := eventLoop.Run(ctx); err != nil && ctx.Err() == nil {
			mainLogger.Fatalf("FATAL: Socket Mode event loop terminated: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	cancel()
	if reminder != nil {
		reminder.Stop()
	}
	mainLogger.Info("Application shut down gracefully.")
}
