package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// galleryResultTypes are the result kinds shown as a grid.
var galleryResultTypes = map[string]struct{}{
	"photo":     {},
	"gif":       {},
	"mpeg4_gif": {},
	"sticker":   {},
}

func isGallery(results []botapi.InlineQueryResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, result := range results {
		if _, ok := galleryResultTypes[result.ResultType()]; !ok {
			return false
		}
	}

	return true
}

func (c *Client) inlineBuilder(ctx context.Context, method string) mapper.InlineBuilder {
	return mapper.InlineBuilder{Bot: c.bot(), Format: c.textFormatter(ctx, method)}
}

// AnswerInlineQuery answers an inline query.
func (c *Client) AnswerInlineQuery(ctx context.Context, params botapi.AnswerInlineQueryParams) error {
	const method = "answerInlineQuery"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("answer inline query validate: %w", err)
	}
	queryID, err := parseQueryID("inline_query_id", params.InlineQueryID)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		results, err := c.inlineBuilder(ctx, method).Results(params.Results)
		if err != nil {
			return err
		}

		request := &tg.MessagesSetInlineBotResultsRequest{
			Gallery:   isGallery(params.Results),
			Private:   params.IsPersonal,
			QueryID:   queryID,
			Results:   results,
			CacheTime: params.CacheTime,
		}
		if params.NextOffset != "" {
			request.SetNextOffset(params.NextOffset)
		}
		if button := params.Button; button != nil {
			if button.WebApp != nil {
				request.SetSwitchWebview(tg.InlineBotWebView{Text: button.Text, URL: button.WebApp.URL})
			} else {
				request.SetSwitchPm(tg.InlineBotSwitchPM{Text: button.Text, StartParam: button.StartParameter})
			}
		}

		if _, err := c.api.MessagesSetInlineBotResults(ctx, request); err != nil {
			return fmt.Errorf("set inline bot results: %w", err)
		}
		return nil
	})
}

// AnswerWebAppQuery sends a message on behalf of the user who opened a Web
// App.
func (c *Client) AnswerWebAppQuery(ctx context.Context, params botapi.AnswerWebAppQueryParams) (botapi.SentWebAppMessage, error) {
	const method = "answerWebAppQuery"
	if err := params.Validate(); err != nil {
		return botapi.SentWebAppMessage{}, fmt.Errorf("answer web app query validate: %w", err)
	}

	var result botapi.SentWebAppMessage
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		native, err := c.inlineBuilder(ctx, method).Result(params.Result)
		if err != nil {
			return err
		}
		sent, err := c.api.MessagesSendWebViewResultMessage(ctx, &tg.MessagesSendWebViewResultMessageRequest{
			BotQueryID: params.WebAppQueryID,
			Result:     native,
		})
		if err != nil {
			return fmt.Errorf("send web view result: %w", err)
		}
		if id, ok := sent.GetMsgID(); ok {
			encoded, err := codec.EncodeInlineMessageID(id)
			if err != nil {
				return err
			}
			result.InlineMessageID = encoded
		}
		return nil
	})
	if err != nil {
		return botapi.SentWebAppMessage{}, err
	}

	return result, nil
}
