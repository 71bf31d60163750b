package xapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zach-sndr/agentic-social/internal/xclient"
)

const tweetID = "1234567890123456789"

func TestPostTweetBodies(t *testing.T) {
	testCases := []struct {
		name     string
		opts     TweetOptions
		wantBody string
	}{
		{
			name:     "text_only",
			opts:     TweetOptions{Text: "hello"},
			wantBody: `{"text":"hello"}`,
		},
		{
			name:     "reply",
			opts:     TweetOptions{Text: "hi", ReplyToID: tweetID},
			wantBody: `{"text":"hi","reply":{"in_reply_to_tweet_id":"1234567890123456789"}}`,
		},
		{
			name:     "quote_with_media_and_settings",
			opts:     TweetOptions{Text: "look", QuoteTweetID: tweetID, MediaIDs: []string{"m1", "m2"}, ReplySettings: "following"},
			wantBody: `{"text":"look","quote_tweet_id":"1234567890123456789","media":{"media_ids":["m1","m2"]},"reply_settings":"following"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, exec := newService(t)
			var got xclient.Request
			exec.EXPECT().Do(gomock.Any(), req(http.MethodPost, "/2/tweets"), gomock.Any()).
				DoAndReturn(capture(&got, `{"data":{"id":"42","text":"x"}}`))

			tw, err := s.PostTweet(context.Background(), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, "42", tw.ID)
			assert.Empty(t, got.Query)
			assert.JSONEq(t, tc.wantBody, jsonOf(t, got.JSON))
		})
	}
}

func TestPostTweetWithoutData(t *testing.T) {
	s, exec := newService(t)
	exec.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond(`{}`))

	_, err := s.PostTweet(context.Background(), TweetOptions{Text: "x"})
	var apiErr *xclient.APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestPostReplyExtractsParentFromURL(t *testing.T) {
	s, exec := newService(t)
	var got xclient.Request
	exec.EXPECT().Do(gomock.Any(), req(http.MethodPost, "/2/tweets"), gomock.Any()).
		DoAndReturn(capture(&got, `{"data":{"id":"43"}}`))

	_, err := s.PostReply(context.Background(), "thanks", "https://x.com/someone/status/"+tweetID+"?s=20")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"thanks","reply":{"in_reply_to_tweet_id":"`+tweetID+`"}}`, jsonOf(t, got.JSON))
}

func TestPostQuoteBadLinkSendsNothing(t *testing.T) {
	s, _ := newService(t)
	_, err := s.PostQuote(context.Background(), "x", "https://example.com/post/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not extract tweet ID from")
	assert.ErrorIs(t, err, xclient.ErrXAPI)
}

func TestPostWithMedia(t *testing.T) {
	s, exec := newService(t)
	var got xclient.Request
	gomock.InOrder(
		exec.EXPECT().UploadMedia(gomock.Any(), "pic.png", xclient.CategoryTweetImage).Return("m9", nil),
		exec.EXPECT().Do(gomock.Any(), req(http.MethodPost, "/2/tweets"), gomock.Any()).
			DoAndReturn(capture(&got, `{"data":{"id":"44"}}`)),
	)

	tw, err := s.PostWithMedia(context.Background(), "caption", "pic.png")
	require.NoError(t, err)
	assert.Equal(t, "44", tw.ID)
	assert.JSONEq(t, `{"text":"caption","media":{"media_ids":["m9"]}}`, jsonOf(t, got.JSON))
}

func TestPostWithMediaUploadFails(t *testing.T) {
	s, exec := newService(t)
	exec.EXPECT().UploadMedia(gomock.Any(), "doc.pdf", xclient.CategoryTweetImage).
		Return("", &xclient.MediaError{Path: "doc.pdf", Reason: "unsupported file type .pdf"})

	_, err := s.PostWithMedia(context.Background(), "caption", "doc.pdf")
	var me *xclient.MediaError
	require.ErrorAs(t, err, &me)
}

func TestDeletePost(t *testing.T) {
	s, exec := newService(t)
	exec.EXPECT().Do(gomock.Any(), req(http.MethodDelete, "/2/tweets/"+tweetID), gomock.Any()).
		DoAndReturn(respond(`{"data":{"deleted":true}}`))

	deleted, err := s.DeletePost(context.Background(), "https://twitter.com/me/status/"+tweetID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRetweet(t *testing.T) {
	s, exec := newService(t)
	var got xclient.Request
	gomock.InOrder(
		exec.EXPECT().Do(gomock.Any(), req(http.MethodGet, "/2/users/me"), gomock.Any()).
			DoAndReturn(respond(`{"data":{"id":"111"}}`)),
		exec.EXPECT().Do(gomock.Any(), req(http.MethodPost, "/2/users/111/retweets"), gomock.Any()).
			DoAndReturn(capture(&got, `{"data":{"retweeted":true,"rest_id":"999"}}`)),
	)

	res, err := s.Retweet(context.Background(), tweetID)
	require.NoError(t, err)
	assert.True(t, res.Retweeted)
	assert.Equal(t, "999", res.RetweetID())
	assert.JSONEq(t, `{"tweet_id":"`+tweetID+`"}`, jsonOf(t, got.JSON))
}

func TestLikePostUsesCachedUserID(t *testing.T) {
	s, exec := newService(t)
	exec.EXPECT().Do(gomock.Any(), req(http.MethodGet, "/2/users/me"), gomock.Any()).
		DoAndReturn(respond(`{"data":{"id":"111"}}`)).Times(1)
	exec.EXPECT().Do(gomock.Any(), req(http.MethodPost, "/2/users/111/likes"), gomock.Any()).
		DoAndReturn(respond(`{"data":{"liked":true}}`)).Times(2)

	for i := 0; i < 2; i++ {
		liked, err := s.LikePost(context.Background(), tweetID)
		require.NoError(t, err)
		assert.True(t, liked)
	}
}

func TestLikePostPropagatesAPIError(t *testing.T) {
	s, exec := newService(t)
	apiErr := &xclient.APIError{StatusCode: 403, Title: "Forbidden"}
	gomock.InOrder(
		exec.EXPECT().Do(gomock.Any(), req(http.MethodGet, "/2/users/me"), gomock.Any()).
			DoAndReturn(respond(`{"data":{"id":"111"}}`)),
		exec.EXPECT().Do(gomock.Any(), req(http.MethodPost, "/2/users/111/likes"), gomock.Any()).
			Return(apiErr),
	)

	_, err := s.LikePost(context.Background(), tweetID)
	assert.True(t, errors.Is(err, xclient.ErrXAPI))
	assert.Equal(t, "API Error 403: Forbidden", err.Error())
}
