// Package detect - Agent handoff detection
package detect

import (
	"time"

	"quina-billing/core/types"
)

// AgentCutoffs returns, per conversation, the earliest timestamp of a
// message whose normalized type equals the handoff sentinel. Absence of
// an entry means the conversation never left the bot.
func AgentCutoffs(messages []types.MessageRecord, sentinel string) map[string]time.Time {
	cutoffs := make(map[string]time.Time)
	for _, msg := range messages {
		if msg.ConversationID == "" || msg.Timestamp.IsZero() {
			continue
		}
		if msg.NormalizedType() != sentinel {
			continue
		}
		if prev, ok := cutoffs[msg.ConversationID]; !ok || msg.Timestamp.Before(prev) {
			cutoffs[msg.ConversationID] = msg.Timestamp
		}
	}
	return cutoffs
}
