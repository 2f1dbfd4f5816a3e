package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint/pkg/codec"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/stretchr/testify/require"
)

// LoadedModel returns a projection holding doc. It fails the test immediately on error.
func LoadedModel(t *testing.T, doc *domain.Mission, opts ...model.Option) *model.Model {
	t.Helper()

	m := model.New(opts...)
	require.NoError(t, m.LoadDocument(doc), "Failed to load document")
	return m
}

// WriteDocument encodes doc with the codec matching name's extension into a temporary
// directory and returns the file path.
func WriteDocument(t *testing.T, name string, doc *domain.Mission) string {
	t.Helper()

	c, err := codec.ForFile(name)
	require.NoError(t, err, "No codec for %s", name)
	data, err := c.Marshal(doc)
	require.NoError(t, err, "Failed to encode document")

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
