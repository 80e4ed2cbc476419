package mtbot

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// GetUpdates long-polls the update queue.
//
// Updates with ids below Offset are confirmed and dropped. When nothing is
// pending the call waits up to Timeout seconds.
func (c *Client) GetUpdates(ctx context.Context, params botapi.GetUpdatesParams) ([]botapi.Update, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("get updates validate: %w", err)
	}

	timeout := time.Duration(params.Timeout) * time.Second
	updates, err := c.updates.Poll(ctx, params.Offset, params.Limit, timeout, params.AllowedUpdates)
	if err != nil {
		return nil, err
	}

	return updates, nil
}

// GetWebhookInfo reports that no webhook is set.
func (c *Client) GetWebhookInfo(context.Context) (botapi.WebhookInfo, error) {
	return botapi.WebhookInfo{PendingUpdateCount: c.updates.Pending()}, nil
}

// SetWebhook is not supported; updates are only served by GetUpdates.
func (c *Client) SetWebhook(context.Context, botapi.SetWebhookParams) error {
	return fmt.Errorf("setWebhook: %w", botapi.ErrNotSupported)
}

// DeleteWebhook is not supported.
func (c *Client) DeleteWebhook(context.Context, botapi.DeleteWebhookParams) error {
	return fmt.Errorf("deleteWebhook: %w", botapi.ErrNotSupported)
}

// LogOut is not supported; the session belongs to the underlying client.
func (c *Client) LogOut(context.Context) error {
	return fmt.Errorf("logOut: %w", botapi.ErrNotSupported)
}

// Close is not supported.
func (c *Client) Close(context.Context) error {
	return fmt.Errorf("close: %w", botapi.ErrNotSupported)
}

// GetMe returns the bot user and records its id.
func (c *Client) GetMe(ctx context.Context) (botapi.User, error) {
	const method = "getMe"

	var result botapi.User
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		users, err := c.api.UsersGetUsers(ctx, []tg.InputUserClass{c.bot()})
		if err != nil {
			return fmt.Errorf("get self: %w", err)
		}
		for _, user := range users {
			self, ok := user.(*tg.User)
			if !ok {
				continue
			}
			c.SetSelfID(self.ID)
			c.collect(ctx, users, nil)
			result = mapper.User(self)
			return nil
		}
		return userNotFound(method)
	})
	if err != nil {
		return botapi.User{}, err
	}

	return result, nil
}
