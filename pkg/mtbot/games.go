package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// SetGameScore records a score in a game message. The edited message is
// returned unless DisableEditMessage is set.
func (c *Client) SetGameScore(ctx context.Context, params botapi.SetGameScoreParams) (*botapi.Message, error) {
	const method = "setGameScore"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("set game score validate: %w", err)
	}
	if params.IsInline() {
		return nil, fmt.Errorf("%s: %w: inline messages use SetInlineGameScore", method, botapi.ErrInvalidParams)
	}

	var result *botapi.Message
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		updates, err := c.api.MessagesSetGameScore(ctx, &tg.MessagesSetGameScoreRequest{
			EditMessage: !params.DisableEditMessage,
			Force:       params.Force,
			Peer:        peer.InputPeer(),
			ID:          params.MessageID,
			UserID:      user,
			Score:       params.Score,
		})
		if err != nil {
			return fmt.Errorf("set game score: %w", err)
		}
		if params.DisableEditMessage {
			return nil
		}
		result, err = c.editedMessage(ctx, method, updates)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SetInlineGameScore records a score in an inline game message.
func (c *Client) SetInlineGameScore(ctx context.Context, params botapi.SetGameScoreParams) error {
	const method = "setGameScore"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set inline game score validate: %w", err)
	}
	id, err := inlineTarget(method, params.EditTarget)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		api, err := c.dcAPI(ctx, codec.InlineMessageDC(id))
		if err != nil {
			return err
		}
		if _, err := api.MessagesSetInlineGameScore(ctx, &tg.MessagesSetInlineGameScoreRequest{
			EditMessage: !params.DisableEditMessage,
			Force:       params.Force,
			ID:          id,
			UserID:      user,
			Score:       params.Score,
		}); err != nil {
			return fmt.Errorf("set inline game score: %w", err)
		}
		return nil
	})
}

func inlineTarget(method string, target botapi.EditTarget) (tg.InputBotInlineMessageIDClass, error) {
	if !target.IsInline() {
		return nil, fmt.Errorf("%s: %w: inline_message_id is required", method, botapi.ErrInvalidParams)
	}
	id, err := codec.DecodeInlineMessageID(target.InlineMessageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return id, nil
}

// GetGameHighScores returns the high score table around a user.
func (c *Client) GetGameHighScores(ctx context.Context, params botapi.GetGameHighScoresParams) ([]botapi.GameHighScore, error) {
	const method = "getGameHighScores"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("get game high scores validate: %w", err)
	}
	if params.IsInline() {
		return nil, fmt.Errorf("%s: %w: inline messages use GetInlineGameHighScores", method, botapi.ErrInvalidParams)
	}

	var result []botapi.GameHighScore
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		scores, err := c.api.MessagesGetGameHighScores(ctx, &tg.MessagesGetGameHighScoresRequest{
			Peer:   peer.InputPeer(),
			ID:     params.MessageID,
			UserID: user,
		})
		if err != nil {
			return fmt.Errorf("get game high scores: %w", err)
		}
		result = c.highScores(ctx, scores)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetInlineGameHighScores returns the high score table of an inline game
// message.
func (c *Client) GetInlineGameHighScores(ctx context.Context, params botapi.GetGameHighScoresParams) ([]botapi.GameHighScore, error) {
	const method = "getGameHighScores"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("get inline game high scores validate: %w", err)
	}
	id, err := inlineTarget(method, params.EditTarget)
	if err != nil {
		return nil, err
	}

	var result []botapi.GameHighScore
	err = c.invoke(ctx, method, func(ctx context.Context) error {
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		api, err := c.dcAPI(ctx, codec.InlineMessageDC(id))
		if err != nil {
			return err
		}
		scores, err := api.MessagesGetInlineGameHighScores(ctx, &tg.MessagesGetInlineGameHighScoresRequest{
			ID:     id,
			UserID: user,
		})
		if err != nil {
			return fmt.Errorf("get inline game high scores: %w", err)
		}
		result = c.highScores(ctx, scores)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) highScores(ctx context.Context, scores *tg.MessagesHighScores) []botapi.GameHighScore {
	collector := c.collect(ctx, scores.Users, nil)

	result := make([]botapi.GameHighScore, 0, len(scores.Scores))
	for _, score := range scores.Scores {
		result = append(result, botapi.GameHighScore{
			Position: score.Pos,
			User:     *mapper.UserByID(collector, score.UserID),
			Score:    score.Score,
		})
	}

	return result
}
