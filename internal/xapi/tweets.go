package xapi

import (
	"context"
	"net/http"

	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/xclient"
)

// TweetOptions describes a new post. Empty fields are omitted from the request.
type TweetOptions struct {
	Text          string
	ReplyToID     string
	QuoteTweetID  string
	MediaIDs      []string
	ReplySettings string // everyone, mentionedUsers, following, subscribers
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type createTweetBody struct {
	Text          string      `json:"text"`
	Reply         *tweetReply `json:"reply,omitempty"`
	QuoteTweetID  string      `json:"quote_tweet_id,omitempty"`
	Media         *tweetMedia `json:"media,omitempty"`
	ReplySettings string      `json:"reply_settings,omitempty"`
}

type tweetResponse struct {
	Data *model.Tweet `json:"data"`
}

// PostTweet creates a post, reply or quote depending on opts.
func (s *Service) PostTweet(ctx context.Context, opts TweetOptions) (*model.Tweet, error) {
	body := createTweetBody{
		Text:          opts.Text,
		QuoteTweetID:  opts.QuoteTweetID,
		ReplySettings: opts.ReplySettings,
	}
	if opts.ReplyToID != "" {
		body.Reply = &tweetReply{InReplyToTweetID: opts.ReplyToID}
	}
	if len(opts.MediaIDs) > 0 {
		body.Media = &tweetMedia{MediaIDs: opts.MediaIDs}
	}

	var resp tweetResponse
	err := s.exec.Do(ctx, xclient.Request{Name: "create_tweet", Method: http.MethodPost, Path: "/2/tweets", JSON: body}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, noData("create_tweet")
	}
	return resp.Data, nil
}

// PostReply replies to the post identified by parent (id or URL).
func (s *Service) PostReply(ctx context.Context, text, parent string) (*model.Tweet, error) {
	id, err := ExtractTweetID(parent)
	if err != nil {
		return nil, err
	}
	return s.PostTweet(ctx, TweetOptions{Text: text, ReplyToID: id})
}

// PostQuote quotes the post identified by quoted (id or URL).
func (s *Service) PostQuote(ctx context.Context, text, quoted string) (*model.Tweet, error) {
	id, err := ExtractTweetID(quoted)
	if err != nil {
		return nil, err
	}
	return s.PostTweet(ctx, TweetOptions{Text: text, QuoteTweetID: id})
}

// PostWithMedia uploads mediaPath and posts text with it attached.
func (s *Service) PostWithMedia(ctx context.Context, text, mediaPath string) (*model.Tweet, error) {
	mediaID, err := s.exec.UploadMedia(ctx, mediaPath, xclient.CategoryTweetImage)
	if err != nil {
		return nil, err
	}
	return s.PostTweet(ctx, TweetOptions{Text: text, MediaIDs: []string{mediaID}})
}

// DeletePost deletes one of the caller's posts and reports the server's deleted flag.
func (s *Service) DeletePost(ctx context.Context, post string) (bool, error) {
	id, err := ExtractTweetID(post)
	if err != nil {
		return false, err
	}
	var resp struct {
		Data *struct {
			Deleted bool `json:"deleted"`
		} `json:"data"`
	}
	if err := s.exec.Do(ctx, xclient.Request{Name: "delete_tweet", Method: http.MethodDelete, Path: "/2/tweets/" + id}, &resp); err != nil {
		return false, err
	}
	return resp.Data != nil && resp.Data.Deleted, nil
}

type tweetIDBody struct {
	TweetID string `json:"tweet_id"`
}

// Retweet reposts post as the authenticated user.
func (s *Service) Retweet(ctx context.Context, post string) (*model.RetweetResult, error) {
	id, err := ExtractTweetID(post)
	if err != nil {
		return nil, err
	}
	me, err := s.MyUserID(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data *model.RetweetResult `json:"data"`
	}
	err = s.exec.Do(ctx, xclient.Request{
		Name:   "retweet",
		Method: http.MethodPost,
		Path:   "/2/users/" + me + "/retweets",
		JSON:   tweetIDBody{TweetID: id},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, noData("retweet")
	}
	return resp.Data, nil
}

// LikePost likes post as the authenticated user and reports the liked flag.
func (s *Service) LikePost(ctx context.Context, post string) (bool, error) {
	id, err := ExtractTweetID(post)
	if err != nil {
		return false, err
	}
	me, err := s.MyUserID(ctx)
	if err != nil {
		return false, err
	}
	var resp struct {
		Data *struct {
			Liked bool `json:"liked"`
		} `json:"data"`
	}
	err = s.exec.Do(ctx, xclient.Request{
		Name:   "like",
		Method: http.MethodPost,
		Path:   "/2/users/" + me + "/likes",
		JSON:   tweetIDBody{TweetID: id},
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Data != nil && resp.Data.Liked, nil
}
