package xapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zach-sndr/agentic-social/internal/logging"
	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/xclient"
)

type tweetsResponse struct {
	Data     []model.Tweet `json:"data"`
	Includes struct {
		Users []model.User `json:"users"`
	} `json:"includes"`
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// GetUserPosts lists a user's recent posts. timeframe ("2hrs", "1d", ...) limits
// how far back to look; an unrecognised timeframe is ignored.
func (s *Service) GetUserPosts(ctx context.Context, username, timeframe string, maxResults int) ([]model.Tweet, error) {
	id, err := s.UserIDByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"max_results":  {strconv.Itoa(clamp(maxResults, 5, 100))},
		"tweet.fields": {"created_at,public_metrics,reply_settings"},
	}
	if timeframe != "" {
		if start, ok := ParseTimeframe(timeframe, s.now()); ok {
			q.Set("start_time", start.Format(TimeFormat))
		} else {
			logging.Warn("xapi_timeframe_ignored", map[string]any{"timeframe": timeframe})
		}
	}

	var resp tweetsResponse
	if err := s.exec.Do(ctx, xclient.Request{Name: "user_tweets", Method: http.MethodGet, Path: "/2/users/" + id + "/tweets", Query: q}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetTimeline reads the authenticated user's reverse-chronological home timeline.
// exclude may hold "replies" and/or "retweets".
func (s *Service) GetTimeline(ctx context.Context, count int, exclude []string) ([]model.Tweet, error) {
	me, err := s.MyUserID(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"max_results":  {strconv.Itoa(clamp(count, 1, 100))},
		"tweet.fields": {"created_at,public_metrics,reply_settings,author_id"},
	}
	if len(exclude) > 0 {
		q["exclude"] = exclude
	}

	var resp tweetsResponse
	err = s.exec.Do(ctx, xclient.Request{
		Name:   "home_timeline",
		Method: http.MethodGet,
		Path:   "/2/users/" + me + "/timelines/reverse_chronological",
		Query:  q,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
