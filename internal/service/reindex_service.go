package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/events"
	"ai-tutor-be/pkg/rag/corpus"
	"ai-tutor-be/pkg/rag/matcher"
)

// ReindexStats describes the index currently serving
type ReindexStats struct {
	Sections    int       `json:"sections"`
	Sources     int       `json:"sources"`
	Reason      string    `json:"reason"`
	ReindexedAt time.Time `json:"reindexed_at"`
	LastError   string    `json:"last_error,omitempty"`
}

type IReindexService interface {
	// Consume starts the bus consumer. It returns once subscribed.
	Consume(ctx context.Context) error
	// Reindex rebuilds the index synchronously
	Reindex(ctx context.Context, reason string) (ReindexStats, error)
	// RequestReindex queues a rebuild on the bus
	RequestReindex(ctx context.Context, reason string, paths []string) error
	Stats() ReindexStats
}

type reindexService struct {
	subscriber message.Subscriber
	publisher  IPublisherService
	topicName  string
	matcher    *matcher.Matcher
	loader     corpus.Loader
	log        logger.ILogger

	mu    sync.Mutex // serialises rebuilds
	stats ReindexStats
	now   func() time.Time
}

func NewReindexService(
	subscriber message.Subscriber,
	publisher IPublisherService,
	topicName string,
	m *matcher.Matcher,
	loader corpus.Loader,
	log logger.ILogger,
) IReindexService {
	return &reindexService{
		subscriber: subscriber,
		publisher:  publisher,
		topicName:  topicName,
		matcher:    m,
		loader:     loader,
		log:        log,
		now:        time.Now,
	}
}

func (rs *reindexService) Consume(ctx context.Context) error {
	messages, err := rs.subscriber.Subscribe(ctx, rs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			rs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a failed rebuild is logged and the previous
// index keeps serving, so there is nothing to retry.
func (rs *reindexService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.Decode(msg.Payload)
	if err != nil {
		rs.log.Warn("REINDEX", "Dropping malformed message", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		return
	}
	if event.EventType() != events.CorpusReindexRequested {
		rs.log.Debug("REINDEX", "Ignoring event", map[string]interface{}{"type": event.EventType()})
		return
	}

	details := map[string]interface{}{"reason": events.Reason(event)}
	if paths, ok := event.Payload()["paths"]; ok {
		details["paths"] = paths
	}
	rs.log.Info("REINDEX", "Reindex requested", details)

	_, _ = rs.Reindex(ctx, events.Reason(event))
}

func (rs *reindexService) Reindex(ctx context.Context, reason string) (ReindexStats, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	started := rs.now()
	idx, err := rs.matcher.Reload(ctx, rs.loader)
	if err != nil {
		rs.stats.LastError = err.Error()

		var cerr *corpus.CorpusError
		details := map[string]interface{}{"reason": reason, "error": err.Error()}
		if errors.As(err, &cerr) {
			details["source"] = cerr.Source
			details["op"] = cerr.Op
		}
		rs.log.Error("REINDEX", "Reindex failed, keeping previous index", details)
		return rs.stats, err
	}

	rs.stats = ReindexStats{
		Sections:    idx.Len(),
		Sources:     len(idx.Sources()),
		Reason:      reason,
		ReindexedAt: rs.now(),
	}
	rs.log.Info("REINDEX", "Index swapped", map[string]interface{}{
		"reason":   reason,
		"sections": rs.stats.Sections,
		"sources":  rs.stats.Sources,
		"took_ms":  rs.now().Sub(started).Milliseconds(),
	})
	return rs.stats, nil
}

func (rs *reindexService) RequestReindex(ctx context.Context, reason string, paths []string) error {
	return rs.publisher.Publish(ctx, events.NewReindexRequested(reason, paths))
}

func (rs *reindexService) Stats() ReindexStats {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.stats
}
