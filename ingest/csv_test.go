package ingest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func drain(t *testing.T, source *CSVSource) []string {
	t.Helper()
	var urls []string
	for {
		url, err := source.Next()
		if err == io.EOF {
			return urls
		}
		require.NoError(t, err)
		urls = append(urls, url)
	}
}

func TestCSVSource(t *testing.T) {
	path := writeCSV(t, "url,title\nhttps://example.com/a,First\nhttps://example.com/b,Second\n")

	source, err := NewCSVSource(path)
	require.NoError(t, err)
	defer source.Close()

	urls := drain(t, source)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestCSVSource_SkipsEmptyRows(t *testing.T) {
	path := writeCSV(t, "title,url\nFirst,https://example.com/a\nNoURL,\nSecond,https://example.com/b\n")

	source, err := NewCSVSource(path)
	require.NoError(t, err)
	defer source.Close()

	urls := drain(t, source)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestCSVSource_HeaderMatchIsCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "URL\nhttps://example.com/a\n")

	source, err := NewCSVSource(path)
	require.NoError(t, err)
	defer source.Close()

	urls := drain(t, source)
	assert.Equal(t, []string{"https://example.com/a"}, urls)
}

func TestCSVSource_NoURLColumn(t *testing.T) {
	path := writeCSV(t, "title,body\nFirst,text\n")

	_, err := NewCSVSource(path)
	assert.ErrorIs(t, err, ErrNoURLColumn)
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
