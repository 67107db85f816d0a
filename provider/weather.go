package provider

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
)

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Weather returns the current weather. Without an API key NoKeyWeather is
// returned and no request is made.
func (c *Client) Weather(ctx context.Context) (Weather, error) {
	if c.cfg.OpenWeatherAPIKey == "" {
		return NoKeyWeather, nil
	}

	var res weatherResponse
	err := c.get(ctx, c.endpoints.Weather, url.Values{
		"q":     {c.cfg.CityName},
		"appid": {c.cfg.OpenWeatherAPIKey},
		"units": {"metric"},
	}, nil, &res)
	if err != nil {
		return FailedWeather, &Error{Provider: "weather", Op: "fetch", Err: err}
	}
	if len(res.Weather) == 0 {
		return FailedWeather, &Error{Provider: "weather", Op: "decode", Err: errors.New("no conditions in response")}
	}

	return Weather{
		Temp: strconv.FormatFloat(math.Round(res.Main.Temp*10)/10, 'f', 1, 64),
		Desc: res.Weather[0].Main,
		Icon: res.Weather[0].Main,
	}, nil
}
