package botapi

// AnswerInlineQueryParams configures answerInlineQuery.
type AnswerInlineQueryParams struct {
	InlineQueryID string
	Results       []InlineQueryResult
	CacheTime     int
	IsPersonal    bool
	NextOffset    string
	Button        *InlineQueryResultsButton
}

// Validate checks the query and result count.
func (p AnswerInlineQueryParams) Validate() error {
	if err := validateRequired("inline_query_id", p.InlineQueryID); err != nil {
		return err
	}
	if len(p.Results) > 50 {
		return invalidParam("at most 50 results are allowed")
	}
	seen := make(map[string]struct{}, len(p.Results))
	for index, result := range p.Results {
		if result == nil {
			return invalidParam("results[%d] is nil", index)
		}
		id := result.ResultID()
		if id == "" || len(id) > 64 {
			return invalidParam("results[%d].id must be 1-64 bytes", index)
		}
		if _, exists := seen[id]; exists {
			return invalidParam("results[%d].id %q is duplicated", index, id)
		}
		seen[id] = struct{}{}
	}
	if len(p.NextOffset) > 64 {
		return invalidParam("next_offset must be at most 64 bytes")
	}

	return nil
}

// AnswerWebAppQueryParams configures answerWebAppQuery.
type AnswerWebAppQueryParams struct {
	WebAppQueryID string
	Result        InlineQueryResult
}

// Validate checks required fields.
func (p AnswerWebAppQueryParams) Validate() error {
	if err := validateRequired("web_app_query_id", p.WebAppQueryID); err != nil {
		return err
	}
	if p.Result == nil {
		return invalidParam("result is required")
	}

	return nil
}

// CreateInvoiceLinkParams configures createInvoiceLink.
type CreateInvoiceLinkParams struct {
	InvoiceParams
}

// AnswerShippingQueryParams configures answerShippingQuery.
type AnswerShippingQueryParams struct {
	ShippingQueryID string
	OK              bool
	ShippingOptions []ShippingOption
	ErrorMessage    string
}

// Validate checks that options or an error accompany the answer.
func (p AnswerShippingQueryParams) Validate() error {
	if err := validateRequired("shipping_query_id", p.ShippingQueryID); err != nil {
		return err
	}
	if p.OK && len(p.ShippingOptions) == 0 {
		return invalidParam("shipping_options are required when ok is true")
	}
	if !p.OK && p.ErrorMessage == "" {
		return invalidParam("error_message is required when ok is false")
	}

	return nil
}

// AnswerPreCheckoutQueryParams configures answerPreCheckoutQuery.
type AnswerPreCheckoutQueryParams struct {
	PreCheckoutQueryID string
	OK                 bool
	ErrorMessage       string
}

// Validate checks that a refusal carries an error.
func (p AnswerPreCheckoutQueryParams) Validate() error {
	if err := validateRequired("pre_checkout_query_id", p.PreCheckoutQueryID); err != nil {
		return err
	}
	if !p.OK && p.ErrorMessage == "" {
		return invalidParam("error_message is required when ok is false")
	}

	return nil
}
