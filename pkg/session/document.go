package session

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
)

// Mission returns the live document, or nil once it has been removed.
func (m *Manager) Mission() *domain.Mission {
	return m.model.Mission()
}

// NewDocument replaces the current document with an empty mission called name.
func (m *Manager) NewDocument(name string) error {
	return m.load(&domain.Mission{Name: name})
}

// LoadDocument validates doc and replaces the current document with a copy of it.
// The caller keeps ownership of doc.
func (m *Manager) LoadDocument(doc *domain.Mission) error {
	if err := validator.ValidateMission(doc); err != nil {
		return err
	}
	return m.load(doc.Clone())
}

// LoadTemplate replaces the current document with the demo mission.
func (m *Manager) LoadTemplate() error {
	return m.load(dsl.Template())
}

// Template returns a fresh copy of the demo mission.
func (m *Manager) Template() *domain.Mission {
	return dsl.Template()
}

// load takes ownership of doc.
func (m *Manager) load(doc *domain.Mission) error {
	if err := m.model.LoadDocument(doc); err != nil {
		return err
	}
	m.filename = ""
	m.docID = ""
	m.saved = doc.Clone()
	m.logger.Debug("document loaded", "name", doc.Name)
	return nil
}

// RemoveDocument drops the current document. Saving fails until one is loaded again.
func (m *Manager) RemoveDocument() error {
	if err := m.model.RemoveDocument(); err != nil {
		return err
	}
	m.filename = ""
	m.docID = ""
	m.saved = nil
	return nil
}

// Modified lists the changes since the document was last loaded, saved or committed.
// It returns nil when there are none.
func (m *Manager) Modified() *domain.DocumentDiff {
	return domain.Diff(m.saved, m.Mission())
}

// IsModified reports whether Modified has any change.
func (m *Manager) IsModified() bool {
	return m.Modified() != nil
}

func (m *Manager) current() (*domain.Mission, error) {
	doc := m.Mission()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded: %w", domain.ErrNilFragment)
	}
	return doc, nil
}

func (m *Manager) markSaved(doc *domain.Mission) {
	m.saved = doc.Clone()
}
