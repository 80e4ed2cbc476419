package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// CreateInvoiceLink exports a payment link for an invoice.
func (c *Client) CreateInvoiceLink(ctx context.Context, params botapi.CreateInvoiceLinkParams) (string, error) {
	const method = "createInvoiceLink"
	if err := params.Validate(); err != nil {
		return "", fmt.Errorf("create invoice link validate: %w", err)
	}

	var link string
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		exported, err := c.api.PaymentsExportInvoice(ctx, mapper.InputInvoice(params.InvoiceParams))
		if err != nil {
			return fmt.Errorf("export invoice: %w", err)
		}
		link = exported.URL
		return nil
	})
	if err != nil {
		return "", err
	}

	return link, nil
}

// AnswerShippingQuery offers shipping options or refuses delivery.
func (c *Client) AnswerShippingQuery(ctx context.Context, params botapi.AnswerShippingQueryParams) error {
	const method = "answerShippingQuery"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("answer shipping query validate: %w", err)
	}
	queryID, err := parseQueryID("shipping_query_id", params.ShippingQueryID)
	if err != nil {
		return err
	}

	request := &tg.MessagesSetBotShippingResultsRequest{QueryID: queryID}
	if params.OK {
		request.SetShippingOptions(mapper.ShippingOptions(params.ShippingOptions))
	} else {
		request.SetError(params.ErrorMessage)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.MessagesSetBotShippingResults(ctx, request); err != nil {
			return fmt.Errorf("set bot shipping results: %w", err)
		}
		return nil
	})
}

// AnswerPreCheckoutQuery confirms or rejects a checkout.
func (c *Client) AnswerPreCheckoutQuery(ctx context.Context, params botapi.AnswerPreCheckoutQueryParams) error {
	const method = "answerPreCheckoutQuery"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("answer pre checkout query validate: %w", err)
	}
	queryID, err := parseQueryID("pre_checkout_query_id", params.PreCheckoutQueryID)
	if err != nil {
		return err
	}

	request := &tg.MessagesSetBotPrecheckoutResultsRequest{Success: params.OK, QueryID: queryID}
	if !params.OK {
		request.SetError(params.ErrorMessage)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.MessagesSetBotPrecheckoutResults(ctx, request); err != nil {
			return fmt.Errorf("set bot precheckout results: %w", err)
		}
		return nil
	})
}
