package mtbot

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

const maxUpdatesLimit = 100

// UpdateQueue receives native updates, projects them onto Bot API updates
// and serves them to GetUpdates.
//
// It implements the native update handler interface so it can sit behind
// the gap recovering updates manager.
type UpdateQueue struct {
	mu      sync.Mutex
	pending []botapi.Update
	nextID  int
	limit   int
	notify  chan struct{}
	client  *Client
}

// NewUpdateQueue creates a queue keeping at most limit pending updates. When
// full, the oldest update is dropped.
func NewUpdateQueue(limit int) *UpdateQueue {
	if limit <= 0 {
		limit = defaultUpdateBuffer
	}

	return &UpdateQueue{
		nextID: 1,
		limit:  limit,
		notify: make(chan struct{}),
	}
}

func (q *UpdateQueue) attach(client *Client) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.client = client
}

func (q *UpdateQueue) owner() *Client {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.client
}

// Handle flattens one native updates container and enqueues every update
// with a Bot API counterpart.
func (q *UpdateQueue) Handle(ctx context.Context, updates tg.UpdatesClass) error {
	client := q.owner()
	if client == nil {
		return fmt.Errorf("handle updates: %w", ErrNotStarted)
	}

	batch, err := flattenUpdates(updates)
	if err != nil {
		return fmt.Errorf("handle updates: %w", err)
	}
	if len(batch.updates) == 0 {
		return nil
	}

	collector := client.collect(ctx, batch.users, batch.chats)
	for _, native := range batch.updates {
		update, ok := mapUpdateSafely(client, native, collector)
		if !ok {
			continue
		}
		client.completeUpdate(ctx, &update)
		q.Push(update)
	}

	return nil
}

func mapUpdateSafely(client *Client, native tg.UpdateClass, collector *mapper.Collector) (update botapi.Update, ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			client.cfg.logger.Error("map update panic",
				"update_class", native.TypeName(),
				"panic", recovered,
			)
			update, ok = botapi.Update{}, false
		}
	}()

	return mapper.Update(native, collector)
}

// Push appends update, assigning the next update id.
func (q *UpdateQueue) Push(update botapi.Update) {
	q.mu.Lock()
	defer q.mu.Unlock()

	update.UpdateID = q.nextID
	q.nextID++
	if len(q.pending) >= q.limit {
		dropped := q.pending[0]
		q.pending = q.pending[1:]
		if q.client != nil {
			q.client.metrics.droppedUpdates.Inc()
			q.client.cfg.logger.Warn("update queue full, dropping oldest update",
				"update_id", dropped.UpdateID,
				"kind", dropped.Kind(),
			)
		}
	}
	q.pending = append(q.pending, update)
	q.reportPending()

	close(q.notify)
	q.notify = make(chan struct{})
}

// Pending returns the number of unconfirmed updates.
func (q *UpdateQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Poll confirms updates below offset and returns up to limit pending updates
// of the allowed kinds, waiting up to timeout when none are pending.
func (q *UpdateQueue) Poll(
	ctx context.Context,
	offset int,
	limit int,
	timeout time.Duration,
	allowed []botapi.UpdateKind,
) ([]botapi.Update, error) {
	if limit <= 0 || limit > maxUpdatesLimit {
		limit = maxUpdatesLimit
	}
	if len(allowed) == 0 {
		allowed = botapi.DefaultAllowedUpdates
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		q.mu.Lock()
		q.confirm(offset)
		q.discard(allowed)
		batch := make([]botapi.Update, min(limit, len(q.pending)))
		copy(batch, q.pending)
		wait := q.notify
		q.mu.Unlock()

		if len(batch) > 0 || deadline == nil {
			return batch, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return batch, nil
		case <-wait:
		}
	}
}

// confirm drops updates with ids below offset. A negative offset keeps only
// the last -offset updates.
func (q *UpdateQueue) confirm(offset int) {
	switch {
	case offset < 0:
		keep := -offset
		if len(q.pending) > keep {
			q.pending = q.pending[len(q.pending)-keep:]
		}
	case offset > 0:
		index := 0
		for index < len(q.pending) && q.pending[index].UpdateID < offset {
			index++
		}
		q.pending = q.pending[index:]
	}
	q.reportPending()
}

func (q *UpdateQueue) discard(allowed []botapi.UpdateKind) {
	kept := q.pending[:0]
	for _, update := range q.pending {
		if slices.Contains(allowed, update.Kind()) {
			kept = append(kept, update)
		}
	}
	clear(q.pending[len(kept):])
	q.pending = kept
	q.reportPending()
}

func (q *UpdateQueue) reportPending() {
	if q.client != nil {
		q.client.metrics.pendingUpdates.Set(float64(len(q.pending)))
	}
}

// completeUpdate loads the messages an update only references.
func (c *Client) completeUpdate(ctx context.Context, update *botapi.Update) {
	if query := update.CallbackQuery; query != nil && query.Message != nil {
		if loaded, err := c.loadMessage(ctx, query.Message.Chat.ID, query.Message.MessageID); err == nil {
			query.Message = loaded
		} else {
			c.cfg.logger.DebugContext(ctx, "load callback message", "error", err, "message_id", query.Message.MessageID)
		}
	}
	if !c.cfg.resolveReplies {
		return
	}

	for _, message := range []*botapi.Message{update.Message, update.EditedMessage, update.ChannelPost, update.EditedChannelPost} {
		if message == nil || message.ReplyToMessageID == 0 || message.ReplyToMessage != nil {
			continue
		}
		reply, err := c.loadMessage(ctx, message.Chat.ID, message.ReplyToMessageID)
		if err != nil {
			c.cfg.logger.DebugContext(ctx, "load reply target", "error", err, "message_id", message.ReplyToMessageID)
			continue
		}
		message.ReplyToMessage = reply
	}
}
