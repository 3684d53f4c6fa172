// Package telegram implements the Bot API surface the bot needs:
// webhook update decoding and outbound message delivery.
package telegram

// Update is one webhook event from the Bot API.
// Only the fields the bot consumes are decoded.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is one inbound chat message.
// Text is nil-equivalent (empty with HasText false semantics handled by
// pointer) for non-text content such as photos and stickers.
type Message struct {
	MessageID int64   `json:"message_id"`
	Chat      Chat    `json:"chat"`
	From      *User   `json:"from,omitempty"`
	Text      *string `json:"text,omitempty"`
}

// Chat identifies one conversation.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

// User identifies the sender.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// IsText reports whether the message carries text content.
func (m *Message) IsText() bool {
	return m != nil && m.Text != nil
}

// TextContent returns the message text, or "" for non-text messages.
func (m *Message) TextContent() string {
	if !m.IsText() {
		return ""
	}
	return *m.Text
}
