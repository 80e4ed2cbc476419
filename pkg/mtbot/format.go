package mtbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotd/td/telegram/message/entity"
	"github.com/gotd/td/telegram/message/html"

	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// formatText resolves parse modes and explicit entities into wire text.
//
// HTML is parsed locally; the Markdown dialects are not implemented.
func (c *Client) formatText(
	ctx context.Context,
	method string,
	text string,
	parseMode string,
	entities []botapi.MessageEntity,
) (mapper.FormattedText, error) {
	resolve := c.userResolver(ctx, method)

	switch parseMode {
	case "":
		native, err := mapper.InputEntities(entities, resolve)
		if err != nil {
			return mapper.FormattedText{}, fmt.Errorf("encode entities: %w", err)
		}
		return mapper.FormattedText{Text: text, Entities: native}, nil
	case botapi.ParseModeHTML:
		var builder entity.Builder
		if err := html.HTML(strings.NewReader(text), &builder, html.Options{UserResolver: resolve}); err != nil {
			return mapper.FormattedText{}, botapi.BadRequest(method, "can't parse entities: "+err.Error())
		}
		plain, native := builder.Complete()
		return mapper.FormattedText{Text: plain, Entities: native}, nil
	default:
		return mapper.FormattedText{}, fmt.Errorf("%w: parse_mode %s", botapi.ErrNotSupported, parseMode)
	}
}

func (c *Client) textFormatter(ctx context.Context, method string) mapper.TextFormatter {
	return func(text string, parseMode string, entities []botapi.MessageEntity) (mapper.FormattedText, error) {
		return c.formatText(ctx, method, text, parseMode, entities)
	}
}

func (c *Client) formatCaption(ctx context.Context, method string, caption botapi.Caption) (mapper.FormattedText, error) {
	return c.formatText(ctx, method, caption.Caption, caption.ParseMode, caption.CaptionEntities)
}
