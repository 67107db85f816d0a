package provider

import (
	"context"
	"errors"
	"math"
	"net/url"

	"github.com/dustin/go-humanize"
)

type priceResponse struct {
	Bitcoin *struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
	} `json:"bitcoin"`
}

// BTC returns the bitcoin price in whole dollars and its 24 hour change.
func (c *Client) BTC(ctx context.Context) (BTC, error) {
	var res priceResponse
	err := c.get(ctx, c.endpoints.BTC, url.Values{
		"ids":                 {"bitcoin"},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
	}, nil, &res)
	if err != nil {
		return FailedBTC, &Error{Provider: "btc", Op: "price", Err: err}
	}
	if res.Bitcoin == nil {
		return FailedBTC, &Error{Provider: "btc", Op: "price", Err: errors.New("no bitcoin quote in response")}
	}
	return BTC{
		USD:       humanize.Commaf(math.Round(res.Bitcoin.USD)),
		Change24h: res.Bitcoin.USD24hChange,
	}, nil
}
