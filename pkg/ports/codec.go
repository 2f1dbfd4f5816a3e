package ports

import "github.com/aretw0/waypoint/pkg/domain"

// Codec converts fragments to and from bytes.
// It is used for drag payloads, swap snapshots and whole-document persistence.
type Codec interface {
	// Name identifies the format (e.g. "binary", "json").
	Name() string

	// Marshal encodes f and its whole subtree.
	Marshal(f domain.Fragment) ([]byte, error)

	// Unmarshal decodes data into target, replacing its content.
	// On error target must be left as it was.
	Unmarshal(data []byte, target domain.Fragment) error
}
