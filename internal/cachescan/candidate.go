package cachescan

import "time"

// Candidate is a directory proposed for deletion. Within one scan, every
// candidate path is disjoint from every other: no candidate is nested
// inside, or duplicates, another.
type Candidate struct {
	// Path is the absolute path of the directory.
	Path string `json:"path"`
	// DisplayName is the human-readable cache type name.
	DisplayName string `json:"display_name"`
	// SizeBytes is the aggregate allocated size of the directory.
	SizeBytes int64 `json:"size_bytes"`
	// TypeID identifies the matched rule.
	TypeID string `json:"type_id"`
	// LastModified is the newest modification time found anywhere under
	// the directory.
	LastModified time.Time `json:"last_modified"`
	// Selected is caller-owned intent, mutated between scan and deletion.
	Selected bool `json:"selected"`
}
