package provider

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

type hitokotoResponse struct {
	Hitokoto string  `json:"hitokoto"`
	From     string  `json:"from"`
	FromWho  *string `json:"from_who"`
}

// Quote returns a random saying from the hitokoto service. The author is the
// person quoted if known, else the work it was taken from.
func (c *Client) Quote(ctx context.Context) (Quote, error) {
	var res hitokotoResponse
	if err := c.get(ctx, c.endpoints.Quote, url.Values{"encode": {"json"}}, nil, &res); err != nil {
		return FallbackQuote, &Error{Provider: "quote", Op: "fetch", Err: err}
	}

	text := strings.TrimSpace(res.Hitokoto)
	if text == "" {
		return FallbackQuote, &Error{Provider: "quote", Op: "decode", Err: errors.New("empty quote")}
	}
	author := strings.TrimSpace(res.From)
	if res.FromWho != nil && strings.TrimSpace(*res.FromWho) != "" {
		author = strings.TrimSpace(*res.FromWho)
	}
	return Quote{Text: text, Author: author}, nil
}
