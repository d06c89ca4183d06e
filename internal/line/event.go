package line

// Webhook payload types.  Only the fields this bot reads are declared;
// LINE sends many more which json decoding silently drops.

// WebhookRequest is the body of a webhook POST: a batch of events.
type WebhookRequest struct {
	Events []Event `json:"events"`
}

// Event is one chat event from the LINE platform.
type Event struct {
	Type       string  `json:"type"` // "message", "join", "follow", ...
	ReplyToken string  `json:"replyToken"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
}

// Source identifies who sent the event and from where.
type Source struct {
	Type    string `json:"type"` // "user", "group", "room"
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

// Message carries the message payload for events of type "message".
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "text", "image", ...
	Text string `json:"text"`
}
