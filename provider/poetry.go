package provider

import (
	"context"
	"errors"
	"strings"
)

type jinrishiciResponse struct {
	Content string `json:"content"`
	Origin  string `json:"origin"`
	Author  string `json:"author"`
}

// lineBreaks end a poem line.
var lineBreaks = strings.NewReplacer("。", "。\n", "？", "？\n", "！", "！\n")

// Poem returns a random poem excerpt from the jinrishici service, one
// sentence per line.
func (c *Client) Poem(ctx context.Context) (Poem, error) {
	var res jinrishiciResponse
	if err := c.get(ctx, c.endpoints.Poetry, nil, nil, &res); err != nil {
		return FallbackPoem, &Error{Provider: "poetry", Op: "fetch", Err: err}
	}

	content := strings.TrimSpace(lineBreaks.Replace(strings.TrimSpace(res.Content)))
	if content == "" {
		return FallbackPoem, &Error{Provider: "poetry", Op: "decode", Err: errors.New("empty poem")}
	}
	return Poem{
		Content: content,
		Title:   strings.TrimSpace(res.Origin),
		Author:  strings.TrimSpace(res.Author),
	}, nil
}
