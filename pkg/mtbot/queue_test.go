package mtbot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

func messageUpdate(text string) botapi.Update {
	return botapi.Update{Message: &botapi.Message{Text: text}}
}

func callbackUpdate(data string) botapi.Update {
	return botapi.Update{CallbackQuery: &botapi.CallbackQuery{ID: "1", Data: data}}
}

func updateIDs(updates []botapi.Update) []int {
	ids := make([]int, 0, len(updates))
	for _, update := range updates {
		ids = append(ids, update.UpdateID)
	}

	return ids
}

func equalIDs(got []int, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for index := range got {
		if got[index] != want[index] {
			return false
		}
	}

	return true
}

func TestUpdateQueuePoll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offset  int
		limit   int
		allowed []botapi.UpdateKind
		want    []int
		pending int
	}{
		{name: "no offset returns everything", want: []int{1, 2, 3, 4, 5}, pending: 5},
		{name: "offset confirms lower ids", offset: 3, want: []int{3, 4, 5}, pending: 3},
		{name: "offset past the end drains", offset: 10, want: []int{}, pending: 0},
		{name: "negative offset keeps the tail", offset: -2, want: []int{4, 5}, pending: 2},
		{name: "limit caps the batch", limit: 2, want: []int{1, 2}, pending: 5},
		{
			name:    "allowed filter discards other kinds",
			allowed: []botapi.UpdateKind{botapi.UpdateKindCallbackQuery},
			want:    []int{2, 4},
			pending: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			queue := NewUpdateQueue(10)
			queue.Push(messageUpdate("a"))
			queue.Push(callbackUpdate("b"))
			queue.Push(messageUpdate("c"))
			queue.Push(callbackUpdate("d"))
			queue.Push(messageUpdate("e"))

			got, err := queue.Poll(context.Background(), tt.offset, tt.limit, 0, tt.allowed)
			if err != nil {
				t.Fatalf("Poll() error = %v", err)
			}
			if ids := updateIDs(got); !equalIDs(ids, tt.want) {
				t.Fatalf("Poll() ids = %v, want %v", ids, tt.want)
			}
			if queue.Pending() != tt.pending {
				t.Fatalf("Pending() = %d, want %d", queue.Pending(), tt.pending)
			}
		})
	}
}

func TestUpdateQueuePollEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	queue := NewUpdateQueue(4)
	got, err := queue.Poll(context.Background(), 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Poll() = %#v, want an empty non-nil slice", got)
	}

	encoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(encoded) != "[]" {
		t.Fatalf("json.Marshal() = %s, want []", encoded)
	}
}

func TestUpdateQueueDropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	queue := NewUpdateQueue(2)
	queue.Push(messageUpdate("a"))
	queue.Push(messageUpdate("b"))
	queue.Push(messageUpdate("c"))

	got, err := queue.Poll(context.Background(), 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if ids := updateIDs(got); !equalIDs(ids, []int{2, 3}) {
		t.Fatalf("Poll() ids = %v, want [2 3]", ids)
	}
}

func TestUpdateQueueLongPoll(t *testing.T) {
	t.Parallel()

	t.Run("times out empty", func(t *testing.T) {
		t.Parallel()

		queue := NewUpdateQueue(0)
		started := time.Now()
		got, err := queue.Poll(context.Background(), 0, 0, 20*time.Millisecond, nil)
		if err != nil {
			t.Fatalf("Poll() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("Poll() = %v, want empty non-nil slice", got)
		}
		if time.Since(started) < 20*time.Millisecond {
			t.Fatal("Poll() returned before the timeout")
		}
	})

	t.Run("wakes on push", func(t *testing.T) {
		t.Parallel()

		queue := NewUpdateQueue(0)
		done := make(chan []botapi.Update, 1)
		go func() {
			got, _ := queue.Poll(context.Background(), 0, 0, 5*time.Second, nil)
			done <- got
		}()

		time.Sleep(10 * time.Millisecond)
		queue.Push(messageUpdate("late"))

		select {
		case got := <-done:
			if len(got) != 1 || got[0].Message.Text != "late" {
				t.Fatalf("Poll() = %+v", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Poll() did not wake up")
		}
	})

	t.Run("ignores filtered pushes", func(t *testing.T) {
		t.Parallel()

		queue := NewUpdateQueue(0)
		queue.Push(botapi.Update{MessageReaction: &botapi.MessageReactionUpdated{}})
		got, err := queue.Poll(context.Background(), 0, 0, 20*time.Millisecond, nil)
		if err != nil {
			t.Fatalf("Poll() error = %v", err)
		}
		if len(got) != 0 || queue.Pending() != 0 {
			t.Fatalf("Poll() = %+v, pending = %d", got, queue.Pending())
		}
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		t.Parallel()

		queue := NewUpdateQueue(0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := queue.Poll(ctx, 0, 0, time.Second, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Poll() error = %v, want context.Canceled", err)
		}
	})
}

func TestUpdateQueueHandleRequiresClient(t *testing.T) {
	t.Parallel()

	queue := NewUpdateQueue(0)
	err := queue.Handle(context.Background(), &tg.Updates{})
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Handle() error = %v, want ErrNotStarted", err)
	}
}

func TestUpdateQueueHandleProjectsMessages(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, nil)
	native := &tg.Updates{
		Updates: []tg.UpdateClass{
			&tg.UpdateNewMessage{Message: &tg.Message{
				ID:      7,
				PeerID:  &tg.PeerUser{UserID: testUserID},
				FromID:  &tg.PeerUser{UserID: testUserID},
				Message: "hello",
				Date:    1700000000,
			}},
			&tg.UpdateUserTyping{UserID: testUserID, Action: &tg.SendMessageTypingAction{}},
		},
		Users: []tg.UserClass{
			&tg.User{ID: testUserID, AccessHash: testUserHash, FirstName: "Ann"},
		},
	}

	if err := client.Updates().Handle(context.Background(), native); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got, err := client.GetUpdates(context.Background(), botapi.GetUpdatesParams{})
	if err != nil {
		t.Fatalf("GetUpdates() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetUpdates() = %d updates, want 1", len(got))
	}
	message := got[0].Message
	if message == nil || message.Text != "hello" || message.MessageID != 7 {
		t.Fatalf("message = %+v", message)
	}
	if message.Chat.ID != testUserID || message.From == nil || message.From.FirstName != "Ann" {
		t.Fatalf("message chat = %+v from = %+v", message.Chat, message.From)
	}
}
