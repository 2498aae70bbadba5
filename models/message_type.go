package models

import "encoding/json"

// MessageType identifies the origin and role of a message in a
// conversation. It serializes as a bare integer for wire compatibility
// with the botserver API.
type MessageType int32

const (
	// MessageTypeExternal is a message injected from an external channel.
	MessageTypeExternal MessageType = 0
	// MessageTypeUser is a message typed by the user.
	MessageTypeUser MessageType = 1
	// MessageTypeBotResponse is a reply produced by the bot.
	MessageTypeBotResponse MessageType = 2
	// MessageTypeContinue asks the bot to continue a truncated reply.
	MessageTypeContinue MessageType = 3
	// MessageTypeSuggestion is a suggested follow-up shown to the user.
	MessageTypeSuggestion MessageType = 4
	// MessageTypeContextChange signals a conversation context switch.
	MessageTypeContextChange MessageType = 5
)

// String returns the wire-level name of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypeExternal:
		return "EXTERNAL"
	case MessageTypeUser:
		return "USER"
	case MessageTypeBotResponse:
		return "BOT_RESPONSE"
	case MessageTypeContinue:
		return "CONTINUE"
	case MessageTypeSuggestion:
		return "SUGGESTION"
	case MessageTypeContextChange:
		return "CONTEXT_CHANGE"
	default:
		return "UNKNOWN"
	}
}

var _ json.Marshaler = MessageType(0)

// MarshalJSON serializes the type as its integer value.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int32(t))
}

// UnmarshalJSON accepts the integer wire value. Unknown values are kept
// as-is so a newer server does not break an older client.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var v int32
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = MessageType(v)
	return nil
}
