package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"finbrief/internal/app"
	"finbrief/internal/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	logger.Init()

	var (
		serve = flag.String("serve", "", "run the HTTP API on this address (e.g. :8080)")
		url   = flag.String("url", "", "brief the article at this URL")
		file  = flag.String("file", "", "brief the article text in this file")
		feeds = flag.String("feeds", "", "brief the latest items from this YAML feed list")
		title = flag.String("title", "", "article title for -file or stdin input")
		max   = flag.Int("max", 5, "maximum feed items to brief with -feeds")
	)
	flag.Parse()

	ctx := context.Background()

	a, err := app.New(ctx)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := run(ctx, a, *serve, *url, *file, *feeds, *title, *max); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, serve, url, file, feeds, title string, max int) error {
	switch {
	case serve != "":
		return a.Serve(serve)
	case url != "":
		return a.BriefURL(ctx, url, os.Stdout)
	case feeds != "":
		return a.BriefFeeds(ctx, feeds, max, os.Stdout)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		return a.BriefText(ctx, title, string(data), os.Stdout)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return a.BriefText(ctx, title, string(data), os.Stdout)
	}
}
