package models

// WebhookPayload is the body Meta posts to the webhook. Only the parts read by
// the owner command flow are decoded.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue carries either inbound messages or delivery statuses.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []InboundMessage `json:"messages"`
	Statuses         []MessageStatus  `json:"statuses"`
}

// InboundMessage is a message sent to the shop's number. Text and
// Interactive are mutually exclusive; other types carry neither.
type InboundMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextContent        `json:"text,omitempty"`
	Interactive *InteractiveContent `json:"interactive,omitempty"`
}

type TextContent struct {
	Body string `json:"body"`
}

// InteractiveContent is a tapped quick-reply button or list row. Their IDs
// are command names such as "/estoque".
type InteractiveContent struct {
	Type        string      `json:"type"`
	ButtonReply *ReplyToken `json:"button_reply,omitempty"`
	ListReply   *ReplyToken `json:"list_reply,omitempty"`
}

type ReplyToken struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MessageStatus is a sent/delivered/read receipt for an outbound message.
type MessageStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	RecipientID string `json:"recipient_id"`
}

// OutboundMessageRequest is the body of POST /send-message.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}
