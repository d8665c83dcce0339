package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestServiceFlags(t *testing.T) {
	flags := serviceFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("db has default path", func(t *testing.T) {
		dbFlag := findString("db")
		require.NotNil(t, dbFlag)
		assert.Equal(t, "./news_db", dbFlag.Value)
		assert.Contains(t, dbFlag.Aliases, "d")
	})

	t.Run("host has local default", func(t *testing.T) {
		hostFlag := findString("host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("models have defaults", func(t *testing.T) {
		embeddingFlag := findString("embedding-model")
		require.NotNil(t, embeddingFlag)
		assert.NotEmpty(t, embeddingFlag.Value)

		chatFlag := findString("chat-model")
		require.NotNil(t, chatFlag)
		assert.NotEmpty(t, chatFlag.Value)
	})

	t.Run("token defaults to none", func(t *testing.T) {
		tokenFlag := findString("token")
		require.NotNil(t, tokenFlag)
		assert.Equal(t, "none", tokenFlag.Value)
	})
}

// commandApp wraps a command action so argument validation can be exercised
// without opening a database or contacting AI services.
func commandApp(name string, action cli.ActionFunc, flags []cli.Flag) *cli.App {
	return &cli.App{
		Name: "newsagent",
		Commands: []*cli.Command{
			{
				Name:   name,
				Action: action,
				Flags:  flags,
			},
		},
	}
}

func TestCommandArgumentValidation(t *testing.T) {
	t.Run("query requires a question", func(t *testing.T) {
		app := commandApp("query", queryCommand, serviceFlags())
		err := app.Run([]string{"newsagent", "query"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question")
	})

	t.Run("summarize requires a URL", func(t *testing.T) {
		app := commandApp("summarize", summarizeCommand, serviceFlags())
		err := app.Run([]string{"newsagent", "summarize"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "URL")
	})

	t.Run("search requires a term", func(t *testing.T) {
		app := commandApp("search", searchCommand, serviceFlags())
		err := app.Run([]string{"newsagent", "search"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search term")
	})

	t.Run("ingest requires URLs or a CSV file", func(t *testing.T) {
		flags := append(serviceFlags(), &cli.StringFlag{Name: "csv"})
		app := commandApp("ingest", ingestCommand, flags)
		err := app.Run([]string{"newsagent", "ingest"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "csv")
	})

	t.Run("get rejects non-numeric IDs", func(t *testing.T) {
		app := commandApp("get", getCommand, serviceFlags())
		err := app.Run([]string{"newsagent", "get", "not-a-number"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid article ID")
	})
}

func TestReembedCommandValidation(t *testing.T) {
	flags := func(batchSize, reportInterval, maxRetries int) []cli.Flag {
		return append(serviceFlags(),
			&cli.IntFlag{Name: "batch-size", Value: batchSize},
			&cli.IntFlag{Name: "report-interval", Value: reportInterval},
			&cli.IntFlag{Name: "max-retries", Value: maxRetries},
			&cli.DurationFlag{Name: "retry-delay"},
		)
	}

	testCases := []struct {
		name           string
		batchSize      int
		reportInterval int
		maxRetries     int
		wantErr        string
	}{
		{"zero batch size", 0, 100, 3, "batch-size"},
		{"zero report interval", 100, 0, 3, "report-interval"},
		{"zero max retries", 100, 100, 0, "max-retries"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := commandApp("reembed", reembedCommand, flags(tc.batchSize, tc.reportInterval, tc.maxRetries))
			err := app.Run([]string{"newsagent", "reembed"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	run := func(level string) error {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
		return app.Run([]string{"test", "--log-level", level})
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, run(level))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, run(level))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := run("invalid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
