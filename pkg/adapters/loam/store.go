// Package loam stores documents as files in a Loam repository, one file per document
// with front matter describing it.
package loam

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/loam"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Content encodings recorded in the front matter.
const (
	EncodingText   = "text"
	EncodingBase64 = "base64"
)

// Metadata is the front matter kept next to each document.
type Metadata struct {
	ID       string `json:"id" mapstructure:"id"`
	Encoding string `json:"encoding" mapstructure:"encoding"`
	Kind     string `json:"kind,omitempty" mapstructure:"kind"`
	Name     string `json:"name,omitempty" mapstructure:"name"`
	// Lead and Trail hold the whitespace around text content, which Loam trims.
	Lead  string `json:"lead,omitempty" mapstructure:"lead"`
	Trail string `json:"trail,omitempty" mapstructure:"trail"`
}

// Store implements ports.DocumentStore on top of a typed Loam repository.
// Printable text is kept readable in the file body; anything else is base64 encoded.
type Store struct {
	repo  *loam.TypedRepository[Metadata]
	codec ports.Codec
	mu    sync.Mutex
}

type Option func(*Store)

// WithCodec sets the codec used to fill the kind and name of text documents.
// Documents it cannot decode are stored without them.
func WithCodec(c ports.Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// Open initializes a Loam repository in dir, without versioning.
func Open(dir string, opts ...Option) (*Store, error) {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to init loam repository at %s: %w", dir, err)
	}
	return New(loam.NewTypedRepository[Metadata](repo), opts...), nil
}

// New wraps an existing typed repository.
func New(repo *loam.TypedRepository[Metadata], opts ...Option) *Store {
	s := &Store{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes data as the body of the document id.
func (s *Store) Save(ctx context.Context, id string, data []byte) error {
	meta := Metadata{ID: id, Encoding: EncodingBase64}
	content := base64.StdEncoding.EncodeToString(data)
	if isText(data) {
		text := string(data)
		body := strings.TrimSpace(text)
		start := strings.Index(text, body)
		meta.Encoding = EncodingText
		meta.Lead = text[:start]
		meta.Trail = text[start+len(body):]
		content = body
		s.describe(data, &meta)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.repo.Save(ctx, &loam.DocumentModel[Metadata]{
		ID:      id,
		Content: content,
		Data:    meta,
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", id, err)
	}
	return nil
}

func (s *Store) describe(data []byte, meta *Metadata) {
	if s.codec == nil {
		return
	}
	doc := &domain.Mission{}
	if err := s.codec.Unmarshal(data, doc); err != nil {
		return
	}
	meta.Kind = domain.KindMission.String()
	meta.Name = doc.Name
}

// Load returns the bytes saved under id.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if !s.exists(ctx, id) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	switch doc.Data.Encoding {
	case EncodingText:
		return []byte(doc.Data.Lead + strings.TrimSpace(doc.Content) + doc.Data.Trail), nil
	case EncodingBase64, "":
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(doc.Content))
		if err != nil {
			return nil, fmt.Errorf("loam document %s: %w: %w", id, domain.ErrCodec, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("loam document %s: encoding %q: %w", id, doc.Data.Encoding, domain.ErrCodec)
	}
}

// Delete removes the document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if !s.exists(ctx, id) {
			return nil
		}
		return fmt.Errorf("loam delete failed for %s: %w", id, err)
	}
	return nil
}

// List returns the ids of every document in the repository.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *Store) list(ctx context.Context) ([]string, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := doc.Data.ID
		if id == "" {
			id = strings.TrimSuffix(doc.ID, filepath.Ext(doc.ID))
		}
		ids = append(ids, filepath.ToSlash(id))
	}
	return ids, nil
}

func (s *Store) exists(ctx context.Context, id string) bool {
	ids, err := s.list(ctx)
	if err != nil {
		return true
	}
	for _, got := range ids {
		if got == id {
			return true
		}
	}
	return false
}

// isText reports whether data survives as a file body: valid UTF-8, printable runes or
// line whitespace, and no leading front matter fence.
func isText(data []byte) bool {
	if len(data) == 0 || !utf8.Valid(data) {
		return false
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "---") {
		return false
	}
	for _, r := range string(data) {
		if r == '\n' || r == '\t' || r == ' ' {
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
