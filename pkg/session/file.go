package session

import (
	"fmt"
	"os"

	"github.com/aretw0/waypoint/internal/adapters/file"
	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/domain"
)

// Filename returns the file the document was last saved to or opened from.
func (m *Manager) Filename() string {
	return m.filename
}

// CanSave reports whether Save has a file to write to.
func (m *Manager) CanSave() bool {
	return m.filename != "" && m.Mission() != nil
}

// SaveAs writes the document to path, in the format chosen by its extension,
// and makes path the current filename.
func (m *Manager) SaveAs(path string) error {
	if path == "" {
		return domain.ErrNoFilename
	}
	doc, err := m.current()
	if err != nil {
		return err
	}
	c, err := m.registry.ForFile(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := file.WriteAtomic(path, data); err != nil {
		return err
	}
	m.filename = path
	m.markSaved(doc)
	m.logger.Info("document saved", "path", path, "codec", c.Name())
	return nil
}

// Save writes the document to the current filename.
func (m *Manager) Save() error {
	if m.filename == "" {
		return domain.ErrNoFilename
	}
	return m.SaveAs(m.filename)
}

// Open reads the document at path and loads it. The current document is kept on failure.
func (m *Manager) Open(path string) error {
	c, err := m.registry.ForFile(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc := &domain.Mission{}
	if err := c.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := validator.ValidateMission(doc); err != nil {
		return err
	}
	if err := m.load(doc); err != nil {
		return err
	}
	m.filename = path
	m.logger.Info("document opened", "path", path, "codec", c.Name())
	return nil
}
