package provider

import (
	"context"
	"fmt"
	"net/url"
)

type vpsResponse struct {
	Error           int     `json:"error"`
	Message         string  `json:"message"`
	DataCounter     float64 `json:"data_counter"`
	PlanMonthlyData float64 `json:"plan_monthly_data"`
}

// VPSUsage returns the share of the monthly transfer quota used so far, in percent.
func (c *Client) VPSUsage(ctx context.Context) (int, error) {
	if c.cfg.VPSAPIKey == "" {
		return 0, &Error{Provider: "vps", Op: "usage", Err: ErrNotConfigured}
	}

	var res vpsResponse
	err := c.get(ctx, c.endpoints.VPS, url.Values{
		"veid":    {c.cfg.VPSVeid},
		"api_key": {c.cfg.VPSAPIKey},
	}, nil, &res)
	if err != nil {
		return 0, &Error{Provider: "vps", Op: "usage", Err: err}
	}
	if res.Error != 0 {
		return 0, &Error{Provider: "vps", Op: "usage", Err: fmt.Errorf("api error %d: %s", res.Error, res.Message)}
	}
	if res.PlanMonthlyData <= 0 {
		return 0, &Error{Provider: "vps", Op: "usage", Err: fmt.Errorf("invalid monthly quota %g", res.PlanMonthlyData)}
	}

	usage := int(res.DataCounter / res.PlanMonthlyData * 100)
	return min(max(usage, 0), 100), nil
}
