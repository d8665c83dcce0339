package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource yields URLs from a CSV file with a url column.
type CSVSource struct {
	file   *os.File
	reader *csv.Reader
	urlCol int
}

// NewCSVSource opens a CSV file and locates its url column from the
// header row. Column matching is case-insensitive.
func NewCSVSource(filePath string) (*CSVSource, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	urlCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "url") {
			urlCol = i
			break
		}
	}
	if urlCol == -1 {
		file.Close()
		return nil, ErrNoURLColumn
	}

	return &CSVSource{file: file, reader: reader, urlCol: urlCol}, nil
}

// Next returns the next non-empty URL, or io.EOF at end of file.
// Rows without a URL value are skipped.
func (s *CSVSource) Next() (string, error) {
	for {
		row, err := s.reader.Read()
		if err == io.EOF {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("reading csv row: %w", err)
		}
		if s.urlCol >= len(row) {
			continue
		}
		url := strings.TrimSpace(row[s.urlCol])
		if url == "" {
			continue
		}
		return url, nil
	}
}

// Close releases the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}
