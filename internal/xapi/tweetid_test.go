package xapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zach-sndr/agentic-social/internal/xclient"
)

func TestExtractTweetID(t *testing.T) {
	ok := map[string]string{
		"1234567890123456789":                                            "1234567890123456789",
		"123456789012345":                                                "123456789012345",
		"https://x.com/user/status/1234567890123456789":                  "1234567890123456789",
		"https://twitter.com/jack/status/20":                             "20",
		"https://mobile.twitter.com/a_b/status/1880000000000000000?s=21": "1880000000000000000",
		"x.com/nasa/status/1700000000000000000/photo/1":                  "1700000000000000000",
	}
	for in, want := range ok {
		got, err := ExtractTweetID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "12345", "123456789012345678901", "https://x.com/user", "https://example.com/u/status/1", "not a link"} {
		_, err := ExtractTweetID(in)
		require.Error(t, err, in)
		assert.Equal(t, "could not extract tweet ID from: "+in, err.Error())
		assert.ErrorIs(t, err, xclient.ErrXAPI)
		var inErr *InputError
		assert.ErrorAs(t, err, &inErr)
	}
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "https://x.com/i/status/42", StatusURL("42"))
}

func TestParseTimeframe(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30min", 30 * time.Minute},
		{"5mins", 5 * time.Minute},
		{"2hrs", 2 * time.Hour},
		{"1hr", time.Hour},
		{"8h", 8 * time.Hour},
		{"1d", 24 * time.Hour},
		{"3 days", 72 * time.Hour},
		{"1W", 7 * 24 * time.Hour},
		{"2weeks", 14 * 24 * time.Hour},
	}
	for _, tc := range cases {
		got, ok := ParseTimeframe(tc.in, now)
		require.True(t, ok, tc.in)
		assert.Equal(t, now.Add(-tc.want), got, tc.in)
	}

	for _, in := range []string{"", "h", "2", "2 fortnights", "-1d", "1.5h"} {
		_, ok := ParseTimeframe(in, now)
		assert.False(t, ok, in)
	}
}
