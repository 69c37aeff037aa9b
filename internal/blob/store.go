package blob

import "io"

// Store is the blob storage backend for document content. Paths returned by
// Save are opaque to callers: they are persisted in document metadata and
// passed back unchanged to the other methods.
type Store interface {
	// Save streams content into the store and returns the path under which
	// it was stored. name is the original client-side file name; it is only
	// a hint for the stored name, uniqueness is the store's job.
	Save(name string, r io.Reader) (string, error)

	// Open returns a reader for previously stored content.
	Open(path string) (io.ReadCloser, error)

	// Exists reports whether the path still resolves to stored content.
	Exists(path string) bool

	// Delete removes stored content. Best-effort: callers may ignore the
	// error when metadata removal is the authoritative outcome.
	Delete(path string) error
}
