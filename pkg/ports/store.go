package ports

import "context"

// DocumentStore persists encoded mission documents.
// Implementations must be safe for concurrent use.
type DocumentStore interface {
	// Save persists data under the given document ID, replacing any previous version.
	Save(ctx context.Context, id string, data []byte) error

	// Load retrieves the data stored for a document ID.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) ([]byte, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored documents.
	List(ctx context.Context) ([]string, error)
}
