package models

import "time"

// UserMessage is an inbound message from a user to a bot.
type UserMessage struct {
	BotID       string      `json:"bot_id"`
	UserID      string      `json:"user_id"`
	SessionID   string      `json:"session_id"`
	Channel     string      `json:"channel"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	MediaURL    string      `json:"media_url,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	ContextName string      `json:"context_name,omitempty"`
}

// NewUserMessage creates a plain text user message stamped with the
// current time.
func NewUserMessage(botID, userID, sessionID, channel, content string) UserMessage {
	return UserMessage{
		BotID:       botID,
		UserID:      userID,
		SessionID:   sessionID,
		Channel:     channel,
		Content:     content,
		MessageType: MessageTypeUser,
		Timestamp:   time.Now().UTC(),
	}
}

// WithMedia returns a copy of the message referencing attached media.
func (m UserMessage) WithMedia(url string) UserMessage {
	m.MediaURL = url
	return m
}

// WithContext returns a copy of the message bound to a named context.
func (m UserMessage) WithContext(name string) UserMessage {
	m.ContextName = name
	return m
}

// HasMedia reports whether the message carries a media attachment.
func (m UserMessage) HasMedia() bool {
	return m.MediaURL != ""
}

// Suggestion is a follow-up option offered alongside a bot response.
type Suggestion struct {
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
	Action  string `json:"action,omitempty"`
	Icon    string `json:"icon,omitempty"`
}

// BotResponse is an outbound reply from a bot, possibly streamed in
// chunks identified by StreamToken.
type BotResponse struct {
	BotID            string       `json:"bot_id"`
	UserID           string       `json:"user_id"`
	SessionID        string       `json:"session_id"`
	Channel          string       `json:"channel"`
	Content          string       `json:"content"`
	MessageType      MessageType  `json:"message_type"`
	StreamToken      string       `json:"stream_token,omitempty"`
	IsComplete       bool         `json:"is_complete"`
	Suggestions      []Suggestion `json:"suggestions,omitempty"`
	ContextName      string       `json:"context_name,omitempty"`
	ContextLength    int          `json:"context_length"`
	ContextMaxLength int          `json:"context_max_length"`
}

// NewBotResponse creates a complete, non-streaming bot response.
func NewBotResponse(botID, sessionID, userID, content, channel string) BotResponse {
	return BotResponse{
		BotID:       botID,
		UserID:      userID,
		SessionID:   sessionID,
		Channel:     channel,
		Content:     content,
		MessageType: MessageTypeBotResponse,
		IsComplete:  true,
	}
}

// NewStreamingResponse creates an empty streaming response identified by
// the given stream token. Content accumulates via AppendContent until
// Complete is called.
func NewStreamingResponse(botID, sessionID, userID, channel, streamToken string) BotResponse {
	return BotResponse{
		BotID:       botID,
		UserID:      userID,
		SessionID:   sessionID,
		Channel:     channel,
		MessageType: MessageTypeBotResponse,
		StreamToken: streamToken,
	}
}

// WithSuggestions returns a copy of the response carrying the given
// suggestion texts.
func (r BotResponse) WithSuggestions(texts ...string) BotResponse {
	suggestions := make([]Suggestion, len(texts))
	for i, t := range texts {
		suggestions[i] = Suggestion{Text: t}
	}
	r.Suggestions = suggestions
	return r
}

// AddSuggestion returns a copy of the response with one more suggestion.
func (r BotResponse) AddSuggestion(s Suggestion) BotResponse {
	r.Suggestions = append(r.Suggestions[:len(r.Suggestions):len(r.Suggestions)], s)
	return r
}

// WithContextInfo returns a copy annotated with conversation context usage.
func (r BotResponse) WithContextInfo(name string, length, maxLength int) BotResponse {
	r.ContextName = name
	r.ContextLength = length
	r.ContextMaxLength = maxLength
	return r
}

// AppendContent appends a streamed chunk to the response content.
func (r *BotResponse) AppendContent(chunk string) {
	r.Content += chunk
}

// Complete marks a streaming response as finished.
func (r *BotResponse) Complete() {
	r.IsComplete = true
}

// IsStreaming reports whether the response is an unfinished stream.
func (r BotResponse) IsStreaming() bool {
	return r.StreamToken != "" && !r.IsComplete
}

// HasSuggestions reports whether any suggestions are attached.
func (r BotResponse) HasSuggestions() bool {
	return len(r.Suggestions) > 0
}
