package domain

import "time"

// BuildInfo records a successful compilation of a cache entry.
type BuildInfo struct {
	EntryID      string    `json:"entry_id,omitzero"`
	InputHash    string    `json:"input_hash,omitzero"`
	ArtifactPath string    `json:"artifact_path,omitzero"`
	Timestamp    time.Time `json:"timestamp,omitzero"`
}
