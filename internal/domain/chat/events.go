package chat

// Message is an inbound top-level or threaded chat message. All fields are
// request-scoped; nothing is retained once the event has been handled.
type Message struct {
	Channel         string
	Timestamp       string
	ThreadTimestamp string
	Text            string
	UserID          string
	SubType         string
	BotOrigin       bool
}

// EditNotification describes an edit to a previously posted message.
type EditNotification struct {
	Channel        string
	Timestamp      string // timestamp of the edited message
	Text           string // text after the edit
	Author         string
	PreviousAuthor string
	ThreadRoot     string // thread_ts of the edited message, empty if unthreaded
}

// IsThreadedReply reports whether the edited message is a reply inside a
// thread rather than a top-level post (a thread root references itself).
func (n EditNotification) IsThreadedReply() bool {
	return n.ThreadRoot != "" && n.ThreadRoot != n.Timestamp
}
