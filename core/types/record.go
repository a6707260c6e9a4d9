// Package types - Raw billing input records
package types

import (
	"strings"
	"time"
)

// ConversationRecord is one row of the per-conversation summary log (RDC).
// One record per conversation with its start time and final tipification.
type ConversationRecord struct {
	// ConversationID identifies the conversation across both logs
	ConversationID string `json:"conversation_id"`

	// UserID is the grouping key for 24h session windowing
	UserID string `json:"user_id"`

	// StartTime is when the conversation opened
	StartTime time.Time `json:"start_time"`

	// Tipification is the free-text final classification, may be empty
	Tipification string `json:"tipification,omitempty"`
}

// MessageRecord is one row of the per-message detail log (DDC).
type MessageRecord struct {
	// ConversationID links the message to its conversation
	ConversationID string `json:"conversation_id"`

	// Text is the message body
	Text string `json:"text"`

	// Timestamp is when the message was sent
	Timestamp time.Time `json:"timestamp"`

	// Type is the raw message type code
	Type string `json:"type"`
}

// NormalizedType returns the message type coerced to the fixed vocabulary:
// upper-cased with surrounding whitespace stripped.
func (m MessageRecord) NormalizedType() string {
	return strings.ToUpper(strings.TrimSpace(m.Type))
}

// DropReport counts rows excluded from processing and why.
// Row-level defects are recovered by exclusion, never fabricated.
type DropReport struct {
	// ConversationsMissingID counts RDC rows without a conversation ID
	ConversationsMissingID int `json:"conversations_missing_id"`

	// ConversationsMissingUser counts RDC rows without a user ID
	ConversationsMissingUser int `json:"conversations_missing_user"`

	// ConversationsMissingStart counts RDC rows without a start time
	ConversationsMissingStart int `json:"conversations_missing_start"`

	// MessagesMissingConversation counts DDC rows without a conversation ID
	MessagesMissingConversation int `json:"messages_missing_conversation"`

	// MessagesMissingTimestamp counts DDC rows without a timestamp
	MessagesMissingTimestamp int `json:"messages_missing_timestamp"`
}

// Total returns the total number of dropped rows
func (d DropReport) Total() int {
	return d.ConversationsMissingID + d.ConversationsMissingUser + d.ConversationsMissingStart +
		d.MessagesMissingConversation + d.MessagesMissingTimestamp
}

// Merge combines two drop reports
func (d DropReport) Merge(other DropReport) DropReport {
	return DropReport{
		ConversationsMissingID:      d.ConversationsMissingID + other.ConversationsMissingID,
		ConversationsMissingUser:    d.ConversationsMissingUser + other.ConversationsMissingUser,
		ConversationsMissingStart:   d.ConversationsMissingStart + other.ConversationsMissingStart,
		MessagesMissingConversation: d.MessagesMissingConversation + other.MessagesMissingConversation,
		MessagesMissingTimestamp:    d.MessagesMissingTimestamp + other.MessagesMissingTimestamp,
	}
}
