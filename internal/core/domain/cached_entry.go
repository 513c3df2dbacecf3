package domain

import "time"

// CachedEntry describes an entry found in a cache directory.
type CachedEntry struct {
	ID           string
	SourcePath   string
	Size         int64
	ModTime      time.Time
	HasArtifact  bool
	ArtifactSize int64
}
