package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where an ingested job description came from.
type Metadata struct {
	Source    string    `json:"source"`
	URL       string    `json:"url,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Hash      string    `json:"hash"` // SHA-256 of the cleaned text
	FetchedAt time.Time `json:"fetched_at"`
	FromCache bool      `json:"from_cache,omitempty"`
	Rendered  bool      `json:"rendered,omitempty"`
}

// NewMetadata creates metadata for cleaned content read from source at now.
func NewMetadata(content, source string, now time.Time) *Metadata {
	return &Metadata{
		Source:    source,
		Hash:      Hash(content),
		FetchedAt: now.UTC(),
	}
}

// Hash returns the hex SHA-256 digest of content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
