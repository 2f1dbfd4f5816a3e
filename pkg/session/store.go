package session

import (
	"context"
	"fmt"

	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/google/uuid"
)

// DocumentID returns the store id of the document, empty until committed or checked out.
func (m *Manager) DocumentID() string {
	return m.docID
}

// Commit stores the document under id and returns the id used.
// An empty id reuses the current one, or generates a new one.
func (m *Manager) Commit(ctx context.Context, id string) (string, error) {
	doc, err := m.current()
	if err != nil {
		return "", err
	}
	if id == "" {
		id = m.docID
	}
	if id == "" {
		id = uuid.NewString()
	}
	data, err := m.codec.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	err = m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, id, data)
	})
	if err != nil {
		return "", err
	}
	m.docID = id
	m.markSaved(doc)
	m.logger.Info("document committed", "document_id", id, "bytes", len(data))
	return id, nil
}

// Checkout replaces the current document with the one stored under id.
// The projection is reset in one step instead of row by row.
func (m *Manager) Checkout(ctx context.Context, id string) error {
	doc, err := m.Inspect(ctx, id)
	if err != nil {
		return err
	}
	if err := m.model.Reset(doc); err != nil {
		return err
	}
	m.filename = ""
	m.docID = id
	m.markSaved(doc)
	m.logger.Info("document checked out", "document_id", id)
	return nil
}

// Inspect decodes the document stored under id without loading it.
func (m *Manager) Inspect(ctx context.Context, id string) (*domain.Mission, error) {
	var data []byte
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		data, err = m.store.Load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	doc := &domain.Mission{}
	if err := m.codec.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	if err := validator.ValidateMission(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the document stored under id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if id == m.docID {
		m.docID = ""
	}
	return nil
}

// Documents lists the stored document ids.
func (m *Manager) Documents(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}
