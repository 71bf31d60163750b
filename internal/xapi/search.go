package xapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/xclient"
)

// SearchQuery is a recent-search request. Query accepts the full operator
// syntax (from:, #tag, has:images, lang:, -term, OR).
type SearchQuery struct {
	Query      string
	MaxResults int
	StartTime  time.Time
	EndTime    time.Time
	SinceID    string
	UntilID    string
}

func (q SearchQuery) values() url.Values {
	v := url.Values{
		"query":        {q.Query},
		"max_results":  {strconv.Itoa(clamp(q.MaxResults, 10, 100))},
		"tweet.fields": {"created_at,public_metrics,reply_settings,author_id,lang"},
		"expansions":   {"author_id"},
		"user.fields":  {"name,username,verified"},
	}
	if !q.StartTime.IsZero() {
		v.Set("start_time", q.StartTime.UTC().Format(TimeFormat))
	}
	if !q.EndTime.IsZero() {
		v.Set("end_time", q.EndTime.UTC().Format(TimeFormat))
	}
	if q.SinceID != "" {
		v.Set("since_id", q.SinceID)
	}
	if q.UntilID != "" {
		v.Set("until_id", q.UntilID)
	}
	return v
}

// SearchTweets runs a recent search and attaches each post's author.
func (s *Service) SearchTweets(ctx context.Context, q SearchQuery) ([]model.Tweet, error) {
	var resp tweetsResponse
	err := s.exec.Do(ctx, xclient.Request{Name: "search_recent", Method: http.MethodGet, Path: "/2/tweets/search/recent", Query: q.values()}, &resp)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]*model.User, len(resp.Includes.Users))
	for i := range resp.Includes.Users {
		u := &resp.Includes.Users[i]
		authors[u.ID] = u
	}
	for i := range resp.Data {
		if u, ok := authors[resp.Data[i].AuthorID]; ok {
			resp.Data[i].Author = u
		}
	}
	return resp.Data, nil
}
