package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/zach-sndr/agentic-social/internal/cmdlog"
	"github.com/zach-sndr/agentic-social/internal/config"
	"github.com/zach-sndr/agentic-social/internal/logging"
	"github.com/zach-sndr/agentic-social/internal/metrics"
	"github.com/zach-sndr/agentic-social/internal/theme"
	"github.com/zach-sndr/agentic-social/internal/xapi"
	"github.com/zach-sndr/agentic-social/internal/xclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// command is one CLI entry point. min is the number of required positional args.
type command struct {
	name  string
	usage string
	help  string
	min   int
	run   func(ctx context.Context, svc *xapi.Service, w io.Writer, args []string) error
}

var commands = []command{
	{"post", "<text>", "Post a tweet", 1, cmdPost},
	{"reply", "<text> <post_url_or_id>", "Reply to a post", 2, cmdReply},
	{"quote", "<text> <post_url_or_id>", "Quote a post", 2, cmdQuote},
	{"post-media", "<text> <media_file>", "Post a tweet with an image or video", 2, cmdPostMedia},
	{"delete", "<post_url_or_id>", "Delete one of your posts", 1, cmdDelete},
	{"like", "<post_url_or_id>", "Like a post", 1, cmdLike},
	{"retweet", "<post_url_or_id>", "Retweet a post", 1, cmdRetweet},
	{"search", "<query> [count] [<N>h]", "Search recent posts", 1, cmdSearch},
	{"timeline", "[count] [exclude,list]", "Read your home timeline", 0, cmdTimeline},
	{"recent", "<username> <timeframe> [count]", "Recent posts from a user (timeframe: 2hrs, 8h, 1d, 1w)", 2, cmdRecent},
	{"dm", "<handle> <text> [media_file]", "Send a direct message", 2, cmdDM},
	{"whoami", "", "Show the authenticated account", 0, cmdWhoami},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(w io.Writer) {
	theme.PrintBanner(w)
	fmt.Fprintln(w, "Usage: xapi <command> [--config path] [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintf(w, "  %-11s %s\n", "init", "Create a config file at ./"+config.DefaultPath)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.help)
		fmt.Fprintf(w, "  %-11s   xapi %s %s\n", "", c.name, c.usage)
	}
}

func run(ctx context.Context, args []string, w io.Writer) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	switch name {
	case "", "help", "-h", "--help":
		printHelp(w)
		return nil
	case "init":
		return cmdInit(args[1:], w)
	}

	c, ok := lookup(name)
	if !ok {
		printHelp(w)
		return fmt.Errorf("unknown command %q", name)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfgPath := fs.String("config", config.DefaultPath, "config path")
	n := leadingFlags(args[1:])
	if err := fs.Parse(args[1 : 1+n]); err != nil {
		return err
	}
	rest := append(append([]string(nil), fs.Args()...), args[1+n:]...)
	if len(rest) < c.min {
		return fmt.Errorf("usage: xapi %s %s", c.name, c.usage)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level)

	client, err := xclient.NewClient(cfg.Credentials,
		xclient.WithBaseURL(cfg.API.BaseURL),
		xclient.WithTimeout(cfg.API.Timeout),
		xclient.WithLimiter(xclient.NewLimiter(cfg.API.RequestsPerSecond, cfg.API.Burst)),
	)
	if err != nil {
		return err
	}
	svc := xapi.New(client)

	err = cmdlog.Run(name, func() error { return c.run(ctx, svc, w, rest) })
	if merr := metrics.WriteTextfile(cfg.Metrics.Textfile); merr != nil {
		logging.Warn("metrics_textfile_failed", map[string]any{"path": cfg.Metrics.Textfile, "error": merr.Error()})
	}
	return err
}

// leadingFlags counts the leading --config arguments (and a closing "--").
// Everything after them is positional, so text such as "-is:retweet" or
// "-5 degrees" is never read as a flag.
func leadingFlags(args []string) int {
	i := 0
	for i < len(args) {
		switch a := args[i]; {
		case a == "--":
			return i + 1
		case a == "-config" || a == "--config":
			i += 2
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			i++
		default:
			return i
		}
	}
	return len(args)
}

func cmdInit(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("path", "./"+config.DefaultPath, "path to write config")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := os.Stat(*path); err == nil && !*force {
		return errors.New(*path + " already exists (use --force to overwrite)")
	}
	if err := config.Save(*path, config.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner(w)
	fmt.Fprintln(w, "Config written to:", abs)
	fmt.Fprintln(w, "Set credentials there or via X_API_KEY, X_API_SECRET, X_ACCESS_TOKEN, X_ACCESS_SECRET.")
	return nil
}
