package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
)

// exampleURLs seeds the dataset when no source file is given.
var exampleURLs = []string{
	"https://www.bbc.com/news/articles/clyxypryrnko",
}

var (
	dataDir     = flag.String("dir", "./data", "data directory to prepare")
	srcFileName = flag.String("src", "", "file of article URLs, one per line")
	force       = flag.Bool("force", false, "overwrite an existing dataset file")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over non-empty lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// writeDataset writes a url-column CSV from the source iterator.
func writeDataset(path string, source iter.Seq[string]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"url"}); err != nil {
		return err
	}
	for url := range source {
		if err := writer.Write([]string{url}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func main() {
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		panic(err)
	}

	csvPath := filepath.Join(*dataDir, "articles_dataset.csv")
	if _, err := os.Stat(csvPath); err == nil && !*force {
		slog.Info("dataset already exists, leaving it in place", "path", csvPath)
		return
	}

	var source iter.Seq[string]
	if *srcFileName != "" {
		var err error
		source, err = linesFromFile(*srcFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(exampleURLs)
	}

	if err := writeDataset(csvPath, source); err != nil {
		panic(err)
	}

	slog.Info("data directory ready", "path", csvPath)
}
