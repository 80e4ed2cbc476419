package botapi

import (
	"errors"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	quiz := 5
	tests := []struct {
		name    string
		params  interface{ Validate() error }
		wantErr bool
	}{
		{name: "send message", params: SendMessageParams{ChatID: ID(1), Text: "hi"}},
		{name: "send message without text", params: SendMessageParams{ChatID: ID(1)}, wantErr: true},
		{
			name:    "parse mode with entities",
			params:  SendMessageParams{ChatID: ID(1), Text: "hi", ParseMode: ParseModeHTML, Entities: []MessageEntity{{Type: EntityTypeBold}}},
			wantErr: true,
		},
		{name: "photo without source", params: SendPhotoParams{ChatID: ID(1)}, wantErr: true},
		{name: "photo by id", params: SendPhotoParams{ChatID: ID(1), Photo: FileID("abc")}},
		{
			name:    "photo with two sources",
			params:  SendPhotoParams{ChatID: ID(1), Photo: InputFile{FileID: "a", URL: "https://x"}},
			wantErr: true,
		},
		{
			name: "album too small",
			params: SendMediaGroupParams{ChatID: ID(1), Media: []InputMedia{
				{Type: InputMediaPhoto, Media: FileID("a")},
			}},
			wantErr: true,
		},
		{
			name: "album with markup",
			params: SendMediaGroupParams{ChatID: ID(1), Media: []InputMedia{
				{Type: InputMediaPhoto, Media: FileID("a")},
				{Type: InputMediaPhoto, Media: FileID("b")},
			}, SendOptions: SendOptions{ReplyMarkup: NewInlineKeyboard()}},
			wantErr: true,
		},
		{
			name:    "quiz option out of range",
			params:  SendPollParams{ChatID: ID(1), Question: "q", Options: []InputPollOption{{Text: "a"}, {Text: "b"}}, Type: PollTypeQuiz, CorrectOptionID: &quiz},
			wantErr: true,
		},
		{name: "bad latitude", params: SendLocationParams{ChatID: ID(1), Latitude: 91}, wantErr: true},
		{name: "unban", params: UnbanChatMemberParams{ChatID: ID(-1000000000001), UserID: 5, OnlyIfBanned: true}},
		{name: "unban without user", params: UnbanChatMemberParams{ChatID: ID(-1)}, wantErr: true},
		{name: "sender chat must be a chat", params: SenderChatParams{ChatID: ID(-1), SenderChatID: 5}, wantErr: true},
		{
			name:    "invite link limit with join request",
			params:  ChatInviteLinkParams{ChatID: ID(-1), MemberLimit: 3, CreatesJoinRequest: true},
			wantErr: true,
		},
		{name: "topic color", params: CreateForumTopicParams{ChatID: ID(-1), Name: "t", IconColor: 1}, wantErr: true},
		{name: "inline edit", params: EditMessageTextParams{EditTarget: EditTarget{InlineMessageID: "x"}, Text: "t"}},
		{
			name:    "mixed edit target",
			params:  EditMessageTextParams{EditTarget: EditTarget{InlineMessageID: "x", MessageID: 1}, Text: "t"},
			wantErr: true,
		},
		{name: "set commands", params: SetMyCommandsParams{Commands: []BotCommand{{Command: "start", Description: "Start"}}}},
		{
			name:    "chat member scope without user",
			params:  SetMyCommandsParams{CommandsParams: CommandsParams{Scope: BotCommandScope{Type: ScopeTypeChatMember, ChatID: ID(-1)}}},
			wantErr: true,
		},
		{name: "language code", params: SetMyNameParams{Name: "bot", LanguageCode: "eng"}, wantErr: true},
		{name: "sticker set name", params: CreateNewStickerSetParams{UserID: 1, Name: "pack", Title: "P"}, wantErr: true},
		{
			name:    "duplicate inline result",
			params:  AnswerInlineQueryParams{InlineQueryID: "q", Results: []InlineQueryResult{InlineQueryResultArticle{InlineResultBase: InlineResultBase{ID: "1"}}, InlineQueryResultArticle{InlineResultBase: InlineResultBase{ID: "1"}}}},
			wantErr: true,
		},
		{name: "pre checkout refusal", params: AnswerPreCheckoutQueryParams{PreCheckoutQueryID: "p"}, wantErr: true},
		{name: "updates limit", params: GetUpdatesParams{Limit: 101}, wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.params.Validate()
			if testCase.wantErr {
				if !errors.Is(err, ErrInvalidParams) {
					t.Fatalf("Validate() error = %v, want ErrInvalidParams", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestRequestErrorHelpers(t *testing.T) {
	t.Parallel()

	err := error(BadRequest("sendMessage", "chat not found"))
	requestErr, ok := AsRequestError(err)
	if !ok {
		t.Fatal("AsRequestError() ok = false")
	}
	if requestErr.Description != "Bad Request: chat not found" {
		t.Fatalf("Description = %q", requestErr.Description)
	}
	if _, limited := AsRateLimit(err); limited {
		t.Fatal("AsRateLimit() = true for a bad request")
	}
}
