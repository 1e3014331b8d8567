package storage

import "context"

// ArchiveResult describes a stored snapshot object.
type ArchiveResult struct {
	Key      string
	Location string
	ETag     string
}

// SnapshotArchiver stores finished bracket snapshots in object storage so
// completed tournaments survive database retention windows. A nil archiver
// is valid: archiving is best-effort and optional.
type SnapshotArchiver interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (*ArchiveResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}
