package mtbot

import (
	"fmt"

	"github.com/gotd/td/tg"
)

// updateBatch is one native updates container unwrapped into plain updates
// with the entities they reference.
type updateBatch struct {
	updates []tg.UpdateClass
	users   []tg.UserClass
	chats   []tg.ChatClass
}

func flattenUpdates(updates tg.UpdatesClass) (updateBatch, error) {
	if updates == nil {
		return updateBatch{}, fmt.Errorf("flatten updates: nil updates")
	}

	switch typed := updates.(type) {
	case *tg.Updates:
		return updateBatch{updates: typed.Updates, users: typed.Users, chats: typed.Chats}, nil
	case *tg.UpdatesCombined:
		return updateBatch{updates: typed.Updates, users: typed.Users, chats: typed.Chats}, nil
	case *tg.UpdateShort:
		return updateBatch{updates: []tg.UpdateClass{typed.Update}}, nil
	case *tg.UpdateShortMessage:
		return updateBatch{updates: []tg.UpdateClass{flattenShortMessage(typed)}}, nil
	case *tg.UpdateShortChatMessage:
		return updateBatch{updates: []tg.UpdateClass{flattenShortChatMessage(typed)}}, nil
	case *tg.UpdatesTooLong, *tg.UpdateShortSentMessage:
		return updateBatch{}, nil
	default:
		return updateBatch{}, fmt.Errorf("flatten updates %s: unsupported container", updates.TypeName())
	}
}

func flattenShortMessage(update *tg.UpdateShortMessage) tg.UpdateClass {
	message := &tg.Message{
		Out:     update.Out,
		ID:      update.ID,
		PeerID:  &tg.PeerUser{UserID: update.UserID},
		Date:    update.Date,
		Message: update.Message,
	}
	if !update.Out {
		message.SetFromID(&tg.PeerUser{UserID: update.UserID})
	}
	if replyTo, ok := update.GetReplyTo(); ok {
		message.SetReplyTo(replyTo)
	}
	if entities, ok := update.GetEntities(); ok {
		message.SetEntities(entities)
	}
	if fwd, ok := update.GetFwdFrom(); ok {
		message.SetFwdFrom(fwd)
	}
	if via, ok := update.GetViaBotID(); ok {
		message.SetViaBotID(via)
	}

	return &tg.UpdateNewMessage{
		Message:  message,
		Pts:      update.Pts,
		PtsCount: update.PtsCount,
	}
}

func flattenShortChatMessage(update *tg.UpdateShortChatMessage) tg.UpdateClass {
	message := &tg.Message{
		Out:     update.Out,
		ID:      update.ID,
		PeerID:  &tg.PeerChat{ChatID: update.ChatID},
		Date:    update.Date,
		Message: update.Message,
	}
	message.SetFromID(&tg.PeerUser{UserID: update.FromID})
	if replyTo, ok := update.GetReplyTo(); ok {
		message.SetReplyTo(replyTo)
	}
	if entities, ok := update.GetEntities(); ok {
		message.SetEntities(entities)
	}
	if fwd, ok := update.GetFwdFrom(); ok {
		message.SetFwdFrom(fwd)
	}
	if via, ok := update.GetViaBotID(); ok {
		message.SetViaBotID(via)
	}

	return &tg.UpdateNewMessage{
		Message:  message,
		Pts:      update.Pts,
		PtsCount: update.PtsCount,
	}
}
