package provider

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BeatGlow/inkboard/config"
)

type githubEvent struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Payload   struct {
		Size *int `json:"size"`
	} `json:"payload"`
}

// PeriodPrefix is the timestamp prefix matching now in the given stats mode.
func PeriodPrefix(mode config.StatsMode, now time.Time) string {
	switch mode {
	case config.StatsYear:
		return now.Format("2006")
	case config.StatsMonth:
		return now.Format("2006-01")
	default:
		return now.Format("2006-01-02")
	}
}

// Commits counts the commits pushed by the configured user in the current
// day, month or year, depending on the stats mode.
func (c *Client) Commits(ctx context.Context, now time.Time) (int, error) {
	if c.cfg.GitHubUsername == "" {
		return 0, &Error{Provider: "github", Op: "commits", Err: ErrNotConfigured}
	}

	var events []githubEvent
	err := c.get(ctx, c.endpoints.GitHub+"/users/"+url.PathEscape(c.cfg.GitHubUsername)+"/events", nil, c.githubHeader("token"), &events)
	if err != nil {
		return 0, &Error{Provider: "github", Op: "commits", Err: err}
	}
	return countCommits(events, PeriodPrefix(c.cfg.GitHubStatsMode, now)), nil
}

func countCommits(events []githubEvent, prefix string) (count int) {
	for _, e := range events {
		if e.Type != "PushEvent" || !strings.HasPrefix(e.CreatedAt, prefix) {
			continue
		}
		if e.Payload.Size != nil {
			count += *e.Payload.Size
		} else {
			count++
		}
	}
	return
}

func (c *Client) githubHeader(scheme string) http.Header {
	h := http.Header{"Accept": {"application/vnd.github+json"}}
	if c.cfg.GitHubToken != "" {
		h.Set("Authorization", scheme+" "+c.cfg.GitHubToken)
	}
	return h
}

const contributionsQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks { contributionDays { date contributionCount } }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type contributionsResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// YearSummary fetches the contribution calendar of the current year. The
// GraphQL API needs a token.
func (c *Client) YearSummary(ctx context.Context, now time.Time) (*YearSummary, error) {
	if c.cfg.GitHubUsername == "" || c.cfg.GitHubToken == "" {
		return nil, &Error{Provider: "github", Op: "year summary", Err: ErrNotConfigured}
	}

	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	var res contributionsResponse
	err := c.request(ctx, http.MethodPost, c.endpoints.GitHubGraphQL, nil, c.githubHeader("bearer"), graphQLRequest{
		Query: contributionsQuery,
		Variables: map[string]any{
			"login": c.cfg.GitHubUsername,
			"from":  from.Format(time.RFC3339),
			"to":    now.Format(time.RFC3339),
		},
	}, &res)
	if err != nil {
		return nil, &Error{Provider: "github", Op: "year summary", Err: err}
	}
	if len(res.Errors) > 0 {
		return nil, &Error{Provider: "github", Op: "year summary", Err: errors.New(res.Errors[0].Message)}
	}
	if res.Data.User == nil {
		return nil, &Error{Provider: "github", Op: "year summary", Err: errors.New("user not found")}
	}

	calendar := res.Data.User.ContributionsCollection.ContributionCalendar
	summary := &YearSummary{Total: calendar.TotalContributions}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			summary.Max = max(summary.Max, day.ContributionCount)
		}
	}
	summary.Avg = math.Round(float64(summary.Total)/float64(now.YearDay())*10) / 10
	return summary, nil
}
