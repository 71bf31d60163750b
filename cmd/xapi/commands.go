package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/util"
	"github.com/zach-sndr/agentic-social/internal/xapi"
)

func cmdPost(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	tw, err := svc.PostTweet(ctx, xapi.TweetOptions{Text: args[0]})
	if err != nil {
		return err
	}
	printPosted(w, "Tweet posted successfully!", tw.ID)
	return nil
}

func cmdReply(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	tw, err := svc.PostReply(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printPosted(w, "Reply posted successfully!", tw.ID)
	return nil
}

func cmdQuote(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	tw, err := svc.PostQuote(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printPosted(w, "Quote tweet posted successfully!", tw.ID)
	return nil
}

func cmdPostMedia(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	tw, err := svc.PostWithMedia(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printPosted(w, "Tweet with media posted successfully!", tw.ID)
	return nil
}

func cmdDelete(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	deleted, err := svc.DeletePost(ctx, args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return errors.New("post was not deleted")
	}
	fmt.Fprintln(w, "Post deleted successfully!")
	return nil
}

func cmdLike(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	liked, err := svc.LikePost(ctx, args[0])
	if err != nil {
		return err
	}
	if !liked {
		return errors.New("post was not liked")
	}
	fmt.Fprintln(w, "Post liked successfully!")
	return nil
}

func cmdRetweet(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	res, err := svc.Retweet(ctx, args[0])
	if err != nil {
		return err
	}
	id := res.RetweetID()
	if id == "" {
		if !res.Retweeted {
			return errors.New("post was not retweeted")
		}
		// the v2 endpoint only acknowledges; link the source post instead
		id, _ = xapi.ExtractTweetID(args[0])
	}
	fmt.Fprintln(w, "Retweeted successfully!")
	fmt.Fprintf(w, "Retweet ID: %s\n", id)
	fmt.Fprintf(w, "URL: %s\n", xapi.StatusURL(id))
	return nil
}

func cmdDM(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	media := ""
	if len(args) > 2 {
		media = args[2]
	}
	ev, err := svc.SendDM(ctx, args[0], args[1], media)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "DM sent successfully!")
	fmt.Fprintf(w, "DM Event ID: %s\n", ev.EventID)
	fmt.Fprintf(w, "Conversation ID: %s\n", ev.ConversationID)
	return nil
}

// searchArgs reads the optional [count] and [<N>h|<N>hrs|<N>hours] arguments.
// Anything else is ignored.
func searchArgs(args []string) (count, hours int) {
	count = 10
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil && n > 0 {
			count = n
			continue
		}
		for _, suffix := range []string{"hours", "hrs", "h"} {
			if strings.HasSuffix(a, suffix) {
				if n, err := strconv.Atoi(strings.TrimSuffix(a, suffix)); err == nil && n > 0 {
					hours = n
				}
				break
			}
		}
	}
	return count, hours
}

func cmdSearch(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	count, hours := searchArgs(args[1:])
	q := xapi.SearchQuery{Query: args[0], MaxResults: count}
	if hours > 0 {
		q.StartTime = time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	}

	fmt.Fprintf(w, "Searching for: %s\n", q.Query)
	if hours > 0 {
		fmt.Fprintf(w, "Time limit: Last %d hours\n", hours)
	}
	fmt.Fprintf(w, "Max results: %d\n\n", count)

	tweets, err := svc.SearchTweets(ctx, q)
	if err != nil {
		return err
	}
	printSearchResults(w, tweets)
	return nil
}

func cmdTimeline(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.New("count must be a number")
		}
		count = n
	}
	var exclude []string
	if len(args) > 1 {
		exclude = util.SplitList(args[1])
	}

	posts, err := svc.GetTimeline(ctx, count, exclude)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nYour Timeline (last %d posts):\n", count)
	printPostList(w, posts, func(t model.Tweet) string {
		return "Author ID: " + orNA(t.AuthorID)
	})
	return nil
}

func cmdRecent(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error {
	username, timeframe := strings.TrimLeft(args[0], "@"), args[1]
	count := 10
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.New("count must be a number")
		}
		count = n
	}

	posts, err := svc.GetUserPosts(ctx, username, timeframe, count)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRecent posts from @%s (last %s):\n", username, timeframe)
	printPostList(w, posts, func(t model.Tweet) string {
		return "ID: " + t.ID
	})
	return nil
}

func cmdWhoami(ctx context.Context, svc *xapi.Service, w io.Writer, _ []string) error {
	me, err := svc.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "@%s", me.Username)
	if me.Name != "" {
		fmt.Fprintf(w, " (%s)", me.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "User ID: %s\n", me.ID)
	return nil
}
