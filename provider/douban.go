package provider

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Douban interest categories.
const (
	doubanBook  = "book"
	doubanMovie = "movie"
	doubanMusic = "music"
)

const (
	doubanPageSize = 50
	doubanMaxPages = 10
)

type doubanInterests struct {
	Total     int `json:"total"`
	Interests []struct {
		CreateTime string `json:"create_time"` // 2006-01-02 15:04:05
	} `json:"interests"`
}

// Douban counts the books, movies and albums marked as done this year.
func (c *Client) Douban(ctx context.Context, now time.Time) (*DoubanStats, error) {
	if c.cfg.DoubanID == "" {
		return nil, &Error{Provider: "douban", Op: "interests", Err: ErrNotConfigured}
	}

	var (
		stats DoubanStats
		err   error
		year  = strconv.Itoa(now.Year())
	)
	if stats.Book, err = c.doubanCount(ctx, doubanBook, year); err != nil {
		return nil, err
	}
	if stats.Movie, err = c.doubanCount(ctx, doubanMovie, year); err != nil {
		return nil, err
	}
	if stats.Music, err = c.doubanCount(ctx, doubanMusic, year); err != nil {
		return nil, err
	}
	return &stats, nil
}

// doubanCount pages through the newest interests until it reaches an older year.
func (c *Client) doubanCount(ctx context.Context, kind, year string) (count int, err error) {
	var (
		endpoint = c.endpoints.Douban + "/user/" + url.PathEscape(c.cfg.DoubanID) + "/interests"
		header   = http.Header{"Referer": {"https://m.douban.com/mine/"}}
	)
	for page := 0; page < doubanMaxPages; page++ {
		var res doubanInterests
		err = c.get(ctx, endpoint, url.Values{
			"type":   {kind},
			"status": {"done"},
			"start":  {strconv.Itoa(page * doubanPageSize)},
			"count":  {strconv.Itoa(doubanPageSize)},
		}, header, &res)
		if err != nil {
			return 0, &Error{Provider: "douban", Op: kind, Err: err}
		}
		for _, item := range res.Interests {
			if !strings.HasPrefix(item.CreateTime, year) {
				return count, nil
			}
			count++
		}
		if len(res.Interests) < doubanPageSize || (page+1)*doubanPageSize >= res.Total {
			return count, nil
		}
	}
	return count, nil
}
