package model

import "time"

// User is the subset of X API v2 user fields the tool reads.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Verified bool   `json:"verified,omitempty"`
}

// PublicMetrics mirrors tweet.fields=public_metrics.
type PublicMetrics struct {
	RetweetCount    int `json:"retweet_count"`
	ReplyCount      int `json:"reply_count"`
	LikeCount       int `json:"like_count"`
	QuoteCount      int `json:"quote_count"`
	BookmarkCount   int `json:"bookmark_count,omitempty"`
	ImpressionCount int `json:"impression_count,omitempty"`
}

// Tweet is the subset of X API v2 tweet fields the tool reads.
type Tweet struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	AuthorID      string         `json:"author_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at,omitempty"`
	Lang          string         `json:"lang,omitempty"`
	ReplySettings string         `json:"reply_settings,omitempty"`
	PublicMetrics *PublicMetrics `json:"public_metrics,omitempty"`

	// Author is filled from includes.users on search results.
	Author *User `json:"author,omitempty"`
}

// Metrics returns the public metrics, zero-valued when the field was not requested.
func (t Tweet) Metrics() PublicMetrics {
	if t.PublicMetrics == nil {
		return PublicMetrics{}
	}
	return *t.PublicMetrics
}

// DMEvent identifies a sent direct message.
type DMEvent struct {
	EventID        string `json:"dm_event_id"`
	ConversationID string `json:"dm_conversation_id"`
}

// RetweetResult is the data block of a retweet response.
type RetweetResult struct {
	ID        string `json:"id,omitempty"`
	RestID    string `json:"rest_id,omitempty"`
	Retweeted bool   `json:"retweeted"`
}

// RetweetID prefers rest_id over id.
func (r RetweetResult) RetweetID() string {
	if r.RestID != "" {
		return r.RestID
	}
	return r.ID
}
