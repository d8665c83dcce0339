// Copyright 2026 News Article Agent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	newsagent "github.com/eduardoibarr/news-article-agent"
	"github.com/eduardoibarr/news-article-agent/agent"
	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/ingest"
	"github.com/eduardoibarr/news-article-agent/reembed"
	"github.com/urfave/cli/v2"
)

// serviceFlags are shared by every command that opens the database and
// talks to the AI services.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./news_db",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL for both embedding and chat",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name for answer generation and article structuring",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "API token (\"none\" for unauthenticated local services)",
			Value: "none",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "newsagent",
		Usage: "Retrieval-augmented question answering over ingested news articles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Answer a question using the ingested articles",
				ArgsUsage: "<question>",
				Action:    queryCommand,
				Flags: append(serviceFlags(),
					&cli.BoolFlag{
						Name:  "stream",
						Usage: "Stream answer tokens as they are generated",
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Fetch, clean, and index articles by URL",
				ArgsUsage: "[url ...]",
				Action:    ingestCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "csv",
						Usage: "CSV file with a url column to ingest in batch",
					},
				),
			},
			{
				Name:      "summarize",
				Usage:     "Summarize the article at a URL",
				ArgsUsage: "<url>",
				Action:    summarizeCommand,
				Flags:     serviceFlags(),
			},
			{
				Name:      "search",
				Usage:     "Keyword search over indexed articles",
				ArgsUsage: "<term>",
				Action:    searchCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				),
			},
			{
				Name:      "get",
				Usage:     "Show a single article by its numeric ID",
				ArgsUsage: "<id>",
				Action:    getCommand,
				Flags:     serviceFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all articles with new embeddings",
				Action: reembedCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of articles to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N articles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openService builds a Service from the shared flags and initializes the
// vector index. Callers must Close the returned service.
func openService(ctx context.Context, c *cli.Context) (*newsagent.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithToken(c.String("token")),
	)

	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	svc, err := newsagent.NewService(c.String("db"), newsagent.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open service: %w", err)
	}

	if err := svc.Initialize(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to initialize index: %w", err)
	}

	return svc, nil
}

func queryCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	ctx := context.Background()

	svc, err := openService(ctx, c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if c.Bool("stream") {
		return streamQuery(ctx, svc, question)
	}

	result := svc.ProcessQuery(ctx, question)
	fmt.Println(result.Answer)
	printSources(result.Sources)
	return nil
}

func streamQuery(ctx context.Context, svc *newsagent.Service, question string) error {
	done := make(chan error, 1)

	svc.ProcessQueryStreaming(ctx, question, agent.StreamCallbacks{
		OnToken: func(token string) {
			fmt.Print(token)
		},
		OnComplete: func(result *core.QueryResult) {
			fmt.Println()
			printSources(result.Sources)
			done <- nil
		},
		OnError: func(err error) {
			fmt.Println()
			done <- fmt.Errorf("streaming failed: %w", err)
		},
	})

	return <-done
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	csvPath := c.String("csv")
	urls := c.Args().Slice()
	if csvPath == "" && len(urls) == 0 {
		return fmt.Errorf("at least one URL or a --csv file is required")
	}

	svc, err := openService(ctx, c)
	if err != nil {
		return err
	}
	defer svc.Close()

	var source ingest.URLSource
	if csvPath != "" {
		csvSource, err := ingest.NewCSVSource(csvPath)
		if err != nil {
			return fmt.Errorf("failed to open CSV source: %w", err)
		}
		defer csvSource.Close()
		source = csvSource
	} else {
		source = ingest.NewSliceSource(urls...)
	}

	tally, err := svc.IngestBatch(ctx, source, func(url string, success bool) {
		if success {
			fmt.Fprintf(os.Stderr, "ok   %s\n", url)
		} else {
			fmt.Fprintf(os.Stderr, "fail %s\n", url)
		}
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d articles, %d failed\n", tally.Succeeded, tally.Failed)
	return nil
}

func summarizeCommand(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("a URL is required")
	}

	ctx := context.Background()

	svc, err := openService(ctx, c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result := svc.Summarize(ctx, url)
	fmt.Println(result.Answer)
	printSources(result.Sources)
	return nil
}

func searchCommand(c *cli.Context) error {
	term := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if term == "" {
		return fmt.Errorf("a search term is required")
	}

	ctx := context.Background()

	svc, err := openService(ctx, c)
	if err != nil {
		return err
	}
	defer svc.Close()

	records, err := svc.Search(ctx, term, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No matching articles.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%d\t%s\n\t%s\n", record.Id, record.Title, record.URL)
	}
	return nil
}

func getCommand(c *cli.Context) error {
	raw := c.Args().First()
	if raw == "" {
		return fmt.Errorf("an article ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid article ID %q: %w", raw, err)
	}

	ctx := context.Background()

	svc, err := openService(ctx, c)
	if err != nil {
		return err
	}
	defer svc.Close()

	record, err := svc.GetByID(ctx, core.ID(id))
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}

	fmt.Printf("Title:     %s\n", record.Title)
	fmt.Printf("URL:       %s\n", record.URL)
	fmt.Printf("Source:    %s\n", record.Source)
	if !record.PublishedAt.IsZero() {
		fmt.Printf("Published: %s\n", record.PublishedAt.Format("2006-01-02"))
	}
	fmt.Println()
	fmt.Println(record.Content)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	svc, err := openService(ctx, c)
	if err != nil {
		return err
	}
	defer svc.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	reembedder := svc.NewReembedder(reembedConfig, os.Stderr)
	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func printSources(sources []core.SourceRef) {
	if len(sources) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Sources:")
	for _, source := range sources {
		fmt.Printf("  - %s (%s)\n", source.Title, source.URL)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
