package botapi

import (
	"encoding/json"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestMessageDecodesAsBotAPIJSON(t *testing.T) {
	t.Parallel()

	update := Update{
		UpdateID: 9,
		Message: &Message{
			MessageID: 15,
			From:      &User{ID: 42, FirstName: "Ann", Username: "ann"},
			Date:      1700000000,
			Chat:      Chat{ID: -1000987654321, Type: ChatTypeSupergroup, Title: "Gophers"},
			Text:      "/start now",
			Entities:  []MessageEntity{{Type: EntityTypeBotCommand, Offset: 0, Length: 6}},
		},
	}

	raw, err := json.Marshal(update)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded tgbotapi.Update
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.UpdateID != 9 || decoded.Message == nil {
		t.Fatalf("decoded update = %+v", decoded)
	}
	if decoded.Message.MessageID != 15 {
		t.Fatalf("MessageID = %d, want 15", decoded.Message.MessageID)
	}
	if decoded.Message.Chat.ID != -1000987654321 || decoded.Message.Chat.Type != "supergroup" {
		t.Fatalf("Chat = %+v", decoded.Message.Chat)
	}
	if !decoded.Message.IsCommand() || decoded.Message.Command() != "start" {
		t.Fatalf("Command() = %q, want start", decoded.Message.Command())
	}
	if decoded.Message.From == nil || decoded.Message.From.UserName != "ann" {
		t.Fatalf("From = %+v", decoded.Message.From)
	}
}

func TestChatMemberFlatJSON(t *testing.T) {
	t.Parallel()

	member := ChatMember{
		Status:      ChatMemberStatusRestricted,
		User:        User{ID: 7, FirstName: "Bo"},
		UntilDate:   1800000000,
		IsMember:    true,
		Permissions: &ChatPermissions{CanSendMessages: true, CanInviteUsers: true},
	}

	raw, err := json.Marshal(member)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded tgbotapi.ChatMember
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Status != "restricted" || decoded.User == nil || decoded.User.ID != 7 {
		t.Fatalf("decoded member = %+v", decoded)
	}
	if !decoded.CanSendMessages || !decoded.CanInviteUsers || decoded.CanSendPolls {
		t.Fatalf("permissions = %+v", decoded)
	}
	if decoded.UntilDate != 1800000000 {
		t.Fatalf("UntilDate = %d", decoded.UntilDate)
	}
}
