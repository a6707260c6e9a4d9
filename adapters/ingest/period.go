// Package ingest - Period loading
package ingest

import (
	"go.uber.org/zap"

	"quina-billing/core/engine"
	"quina-billing/internal/logging"
)

// LoadPeriod discovers and parses one period folder into engine input.
func LoadPeriod(dir string) (engine.Input, error) {
	sources, err := DiscoverPeriod(dir)
	if err != nil {
		return engine.Input{}, err
	}

	conversations, err := ReadConversations(sources.RDC)
	if err != nil {
		return engine.Input{}, err
	}
	messages, err := ReadAllMessages(sources.DDC)
	if err != nil {
		return engine.Input{}, err
	}

	logging.Info("period ingested",
		zap.String("dir", dir),
		zap.Int("ddc_files", len(sources.DDC)),
		zap.Int("conversations", len(conversations)),
		zap.Int("messages", len(messages)))

	return engine.Input{Conversations: conversations, Messages: messages}, nil
}
