// internal/infra/slack/events.go
package slack

import (
	"context"

	"github.com/fujimatsutomu/slack-kintai/internal/app"
	"github.com/fujimatsutomu/slack-kintai/internal/domain/chat"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

const subTypeMessageChanged = "message_changed"

// EventLoop receives Events API payloads over a Socket Mode connection and
// feeds them to the application router. Every event is acked and handled to
// completion; handler failures are logged inside the services and never
// reach the socketmode dispatcher.
type EventLoop struct {
	socket *socketmode.Client
	router *app.Router
	logger *logrus.Entry
}

func NewEventLoop(socket *socketmode.Client, router *app.Router, logger *logrus.Entry) *EventLoop {
	return &EventLoop{
		socket: socket,
		router: router,
		logger: logger,
	}
}

// Run starts the dispatch goroutine and blocks on the Socket Mode
// connection until the context is cancelled.
func (l *EventLoop) Run(ctx context.Context) error {
	go l.dispatch(ctx)
	return l.socket.RunContext(ctx)
}

func (l *EventLoop) dispatch(ctx context.Context) {
	for evt := range l.socket.Events {
		switch evt.Type {
		case socketmode.EventTypeConnecting:
			l.logger.Info("Connecting to Slack via Socket Mode...")
		case socketmode.EventTypeConnected:
			l.logger.Info("Connected to Slack.")
		case socketmode.EventTypeConnectionError:
			l.logger.Errorf("Socket Mode connection error: %v", evt.Data)
		case socketmode.EventTypeEventsAPI:
			apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				continue
			}
			if evt.Request != nil {
				l.socket.Ack(*evt.Request)
			}
			l.handleEventsAPI(ctx, apiEvent)
		}
	}
}

func (l *EventLoop) handleEventsAPI(ctx context.Context, e slackevents.EventsAPIEvent) {
	if e.Type != slackevents.CallbackEvent {
		return
	}
	switch ev := e.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		if ev.SubType == subTypeMessageChanged {
			if n, ok := editNotification(ev); ok {
				l.router.HandleEdit(ctx, n)
			}
			return
		}
		l.router.HandleMessage(ctx, inboundMessage(ev))
	}
}

func inboundMessage(ev *slackevents.MessageEvent) chat.Message {
	return chat.Message{
		Channel:         ev.Channel,
		Timestamp:       ev.TimeStamp,
		ThreadTimestamp: ev.ThreadTimeStamp,
		Text:            ev.Text,
		UserID:          ev.User,
		SubType:         ev.SubType,
		BotOrigin:       ev.BotID != "",
	}
}

// editNotification flattens a message_changed payload. The edited message
// and its previous version ride along as nested message objects; payloads
// missing either are not actionable edits.
func editNotification(ev *slackevents.MessageEvent) (chat.EditNotification, bool) {
	if ev.Message == nil || ev.PreviousMessage == nil {
		return chat.EditNotification{}, false
	}
	return chat.EditNotification{
		Channel:        ev.Channel,
		Timestamp:      ev.Message.TimeStamp,
		Text:           ev.Message.Text,
		Author:         ev.Message.User,
		PreviousAuthor: ev.PreviousMessage.User,
		ThreadRoot:     ev.Message.ThreadTimeStamp,
	}, true
}
