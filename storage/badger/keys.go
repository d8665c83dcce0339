package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/eduardoibarr/news-article-agent/core"
)

// Key prefixes for different data types. The index prefixes share the record
// prefix so a single iterator can scan records while skipping index entries.
const (
	articleRecordPrefix = "artrec"
	articleDatePrefix   = "artrecd"
	articleURLPrefix    = "artrecu"
)

// makeArticleKey generates a key for an article record by ID.
func makeArticleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", articleRecordPrefix, id))
}

// makeArticleDateKey generates a composite key for the insertion-order index.
// Format: prefix:createdAt:id
func makeArticleDateKey(createdAt time.Time, id core.ID) []byte {
	prefix := articleDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeArticleURLKey generates a composite key for the URL index.
// Format: prefix:urlhash:id
func makeArticleURLKey(url string, id core.ID) []byte {
	prefix := articleURLPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for URL hash + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Hash the URL so arbitrary characters can't collide with key separators
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(url)))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialArticleURLKey generates a partial key for URL lookups.
// Format: prefix:urlhash
func makePartialArticleURLKey(url string) []byte {
	prefix := articleURLPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(url)))
	return buf
}
