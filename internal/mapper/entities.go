package mapper

import (
	"strconv"

	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

// Entities projects native text entities. Offsets are already measured in
// UTF-16 code units on both sides.
func Entities(entities []tg.MessageEntityClass, collector *Collector) []botapi.MessageEntity {
	if len(entities) == 0 {
		return nil
	}

	result := make([]botapi.MessageEntity, 0, len(entities))
	for _, entity := range entities {
		projected := botapi.MessageEntity{Offset: entity.GetOffset(), Length: entity.GetLength()}
		switch typed := entity.(type) {
		case *tg.MessageEntityMention:
			projected.Type = botapi.EntityTypeMention
		case *tg.MessageEntityHashtag:
			projected.Type = botapi.EntityTypeHashtag
		case *tg.MessageEntityCashtag:
			projected.Type = botapi.EntityTypeCashtag
		case *tg.MessageEntityBotCommand:
			projected.Type = botapi.EntityTypeBotCommand
		case *tg.MessageEntityURL:
			projected.Type = botapi.EntityTypeURL
		case *tg.MessageEntityEmail:
			projected.Type = botapi.EntityTypeEmail
		case *tg.MessageEntityPhone:
			projected.Type = botapi.EntityTypePhoneNumber
		case *tg.MessageEntityBold:
			projected.Type = botapi.EntityTypeBold
		case *tg.MessageEntityItalic:
			projected.Type = botapi.EntityTypeItalic
		case *tg.MessageEntityUnderline:
			projected.Type = botapi.EntityTypeUnderline
		case *tg.MessageEntityStrike:
			projected.Type = botapi.EntityTypeStrikethrough
		case *tg.MessageEntitySpoiler:
			projected.Type = botapi.EntityTypeSpoiler
		case *tg.MessageEntityBlockquote:
			projected.Type = botapi.EntityTypeBlockquote
			if typed.Collapsed {
				projected.Type = botapi.EntityTypeExpandableBlockquote
			}
		case *tg.MessageEntityCode:
			projected.Type = botapi.EntityTypeCode
		case *tg.MessageEntityPre:
			projected.Type = botapi.EntityTypePre
			projected.Language = typed.Language
		case *tg.MessageEntityTextURL:
			projected.Type = botapi.EntityTypeTextLink
			projected.URL = typed.URL
		case *tg.MessageEntityMentionName:
			projected.Type = botapi.EntityTypeTextMention
			projected.User = UserByID(collector, typed.UserID)
		case *tg.MessageEntityCustomEmoji:
			projected.Type = botapi.EntityTypeCustomEmoji
			projected.CustomEmojiID = formatID(typed.DocumentID)
		default:
			continue
		}
		result = append(result, projected)
	}

	return result
}

// UserResolver returns the input user for a user id mentioned by an entity.
type UserResolver func(userID int64) (tg.InputUserClass, error)

// InputEntities encodes Bot API entities for outgoing text.
func InputEntities(entities []botapi.MessageEntity, resolve UserResolver) ([]tg.MessageEntityClass, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	result := make([]tg.MessageEntityClass, 0, len(entities))
	for _, entity := range entities {
		offset, length := entity.Offset, entity.Length
		var native tg.MessageEntityClass
		switch entity.Type {
		case botapi.EntityTypeMention:
			native = &tg.MessageEntityMention{Offset: offset, Length: length}
		case botapi.EntityTypeHashtag:
			native = &tg.MessageEntityHashtag{Offset: offset, Length: length}
		case botapi.EntityTypeCashtag:
			native = &tg.MessageEntityCashtag{Offset: offset, Length: length}
		case botapi.EntityTypeBotCommand:
			native = &tg.MessageEntityBotCommand{Offset: offset, Length: length}
		case botapi.EntityTypeURL:
			native = &tg.MessageEntityURL{Offset: offset, Length: length}
		case botapi.EntityTypeEmail:
			native = &tg.MessageEntityEmail{Offset: offset, Length: length}
		case botapi.EntityTypePhoneNumber:
			native = &tg.MessageEntityPhone{Offset: offset, Length: length}
		case botapi.EntityTypeBold:
			native = &tg.MessageEntityBold{Offset: offset, Length: length}
		case botapi.EntityTypeItalic:
			native = &tg.MessageEntityItalic{Offset: offset, Length: length}
		case botapi.EntityTypeUnderline:
			native = &tg.MessageEntityUnderline{Offset: offset, Length: length}
		case botapi.EntityTypeStrikethrough:
			native = &tg.MessageEntityStrike{Offset: offset, Length: length}
		case botapi.EntityTypeSpoiler:
			native = &tg.MessageEntitySpoiler{Offset: offset, Length: length}
		case botapi.EntityTypeBlockquote:
			native = &tg.MessageEntityBlockquote{Offset: offset, Length: length}
		case botapi.EntityTypeExpandableBlockquote:
			native = &tg.MessageEntityBlockquote{Collapsed: true, Offset: offset, Length: length}
		case botapi.EntityTypeCode:
			native = &tg.MessageEntityCode{Offset: offset, Length: length}
		case botapi.EntityTypePre:
			native = &tg.MessageEntityPre{Offset: offset, Length: length, Language: entity.Language}
		case botapi.EntityTypeTextLink:
			native = &tg.MessageEntityTextURL{Offset: offset, Length: length, URL: entity.URL}
		case botapi.EntityTypeTextMention:
			if entity.User == nil || resolve == nil {
				return nil, botapi.BadRequest("", "text_mention entity requires a user")
			}
			user, err := resolve(entity.User.ID)
			if err != nil {
				return nil, err
			}
			native = &tg.InputMessageEntityMentionName{Offset: offset, Length: length, UserID: user}
		case botapi.EntityTypeCustomEmoji:
			id, err := strconv.ParseInt(entity.CustomEmojiID, 10, 64)
			if err != nil {
				return nil, botapi.BadRequest("", "invalid custom_emoji_id "+strconv.Quote(entity.CustomEmojiID))
			}
			native = &tg.MessageEntityCustomEmoji{Offset: offset, Length: length, DocumentID: id}
		default:
			return nil, botapi.BadRequest("", "unsupported entity type "+strconv.Quote(string(entity.Type)))
		}
		result = append(result, native)
	}

	return result, nil
}
