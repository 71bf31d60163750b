package main

import (
	"fmt"
	"io"
	"time"

	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/util"
	"github.com/zach-sndr/agentic-social/internal/xapi"
)

func printPosted(w io.Writer, headline, id string) {
	fmt.Fprintln(w, headline)
	fmt.Fprintf(w, "Tweet ID: %s\n", id)
	fmt.Fprintf(w, "URL: %s\n", xapi.StatusURL(id))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func printMetrics(w io.Writer, t model.Tweet) {
	m := t.Metrics()
	fmt.Fprintf(w, "   Likes: %d | Retweets: %d | Replies: %d\n", m.LikeCount, m.RetweetCount, m.ReplyCount)
	fmt.Fprintf(w, "   URL: %s\n", xapi.StatusURL(t.ID))
	fmt.Fprintln(w)
}

// printPostList renders a numbered listing; label supplies the text after the timestamp.
func printPostList(w io.Writer, posts []model.Tweet, label func(model.Tweet) string) {
	fmt.Fprintf(w, "Found %d post(s)\n\n", len(posts))
	for i, t := range posts {
		created := "N/A"
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, created, label(t))
		fmt.Fprintf(w, "   %s\n", util.Truncate(util.NormalizeWhitespace(t.Text), 100))
		printMetrics(w, t)
	}
}

func printSearchResults(w io.Writer, tweets []model.Tweet) {
	if len(tweets) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	fmt.Fprintf(w, "Found %d result(s):\n\n", len(tweets))
	for i, t := range tweets {
		created := "Unknown"
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")
		}
		username, name, verified := "unknown", "", ""
		if t.Author != nil {
			if t.Author.Username != "" {
				username = t.Author.Username
			}
			name = t.Author.Name
			if t.Author.Verified {
				verified = " ✓"
			}
		}
		fmt.Fprintf(w, "%d. [%s] @%s%s\n", i+1, created, username, verified)
		if name != "" {
			fmt.Fprintf(w, "   %s\n", name)
		}
		fmt.Fprintf(w, "   %s\n", util.Truncate(util.NormalizeWhitespace(t.Text), 200))
		printMetrics(w, t)
	}
}
