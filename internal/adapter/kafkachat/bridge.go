package kafkachat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/surf-session-bot/internal/dialogue"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

// MessageFetcher consumes inbound messages with explicit offset commits.
type MessageFetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ReplySender publishes one bot reply to a user.
type ReplySender interface {
	Send(ctx context.Context, userID, text string) error
}

// Responder turns one user message plus prior state into a reply and next state.
type Responder interface {
	Respond(ctx context.Context, text string, state dialogue.State) (string, dialogue.State)
}

// Bridge runs the consume-respond-produce loop. A fetched message is only
// committed after its reply was published and the user's state saved, so a
// crash mid-turn replays the turn instead of dropping it.
type Bridge struct {
	fetcher MessageFetcher
	sender  ReplySender
	engine  Responder
	states  dialogue.StateStore
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewBridge creates the chat bridge with the given transport and engine.
func NewBridge(fetcher MessageFetcher, sender ReplySender, engine Responder, states dialogue.StateStore, logger *slog.Logger, metrics *observability.Metrics) *Bridge {
	return &Bridge{
		fetcher: fetcher,
		sender:  sender,
		engine:  engine,
		states:  states,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the bridge has completed at least one turn.
func (b *Bridge) CheckReadiness(_ context.Context) error {
	if !b.ready.Load() {
		return errors.New("bridge has not processed any messages yet")
	}
	return nil
}

// Run consumes inbound messages until the context is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	b.logger.Info("chat bridge started")
	b.metrics.BridgeRunning.Set(1)
	defer b.metrics.BridgeRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("chat bridge stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !b.processTurn(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processTurn handles one inbound message end to end. Returns false if the
// bridge should stop.
func (b *Bridge) processTurn(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	msg, err := b.fetcher.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		b.logger.Error("fetch message failed", "error", err)
		return b.backoffOrStop(ctx, backoff, maxBackoff)
	}
	*backoff = 200 * time.Millisecond
	b.metrics.MessagesConsumed.Inc()

	var inbound InboundMessage
	if err := json.Unmarshal(msg.Value, &inbound); err != nil || inbound.UserID == "" {
		// Malformed messages can never succeed on replay; skip past them.
		b.logger.Warn("skipping malformed inbound message",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		b.commit(ctx, msg)
		return true
	}

	state, _ := b.states.Get(inbound.UserID)
	reply, next := b.engine.Respond(ctx, inbound.Text, state)
	b.states.Put(inbound.UserID, next)

	if err := b.sender.Send(ctx, inbound.UserID, reply); err != nil {
		if ctx.Err() != nil {
			return false
		}
		// Uncommitted, so the turn replays once the producer recovers.
		b.logger.Error("send reply failed", "user_id", inbound.UserID, "error", err)
		return b.backoffOrStop(ctx, backoff, maxBackoff)
	}
	b.metrics.MessagesProduced.Inc()

	b.commit(ctx, msg)
	b.ready.Store(true)
	return true
}

func (b *Bridge) commit(ctx context.Context, msg kafkago.Message) {
	if err := b.fetcher.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
		b.logger.Error("commit failed", "partition", msg.Partition, "offset", msg.Offset, "error", err)
	}
}

// backoffOrStop sleeps for the current backoff, doubling it up to the cap.
// Returns false if the context was cancelled while waiting.
func (b *Bridge) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(*backoff):
	}
	*backoff *= 2
	if *backoff > maxBackoff {
		*backoff = maxBackoff
	}
	return true
}
