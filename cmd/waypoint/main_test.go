package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/testutils"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/aretw0/waypoint/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) *cli.Workspace {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Kind = config.StoreMemory
	w, err := cli.NewWorkspace(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNewAndEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	var out bytes.Buffer

	require.NoError(t, runNew(newWorkspace(t), path, "Survey", false, false, &out))
	assert.Contains(t, out.String(), "Created 'Survey'")
	assert.Error(t, runNew(newWorkspace(t), path, "Again", false, false, &out), "existing file needs --force")

	out.Reset()
	require.NoError(t, runAdd(newWorkspace(t), path, "collection", "0", &out))
	assert.Contains(t, out.String(), "/0/0")
	require.NoError(t, runAdd(newWorkspace(t), path, "rail", "0/0", &out))
	require.NoError(t, runAdd(newWorkspace(t), path, "point", "0/0", &out))

	assert.ErrorIs(t, runAdd(newWorkspace(t), path, "mission", "", &out), domain.ErrUnsupported)
	assert.ErrorIs(t, runAdd(newWorkspace(t), path, "device", "0/0", &out), domain.ErrUnsupported)

	require.NoError(t, edit(newWorkspace(t), path, func(m *session.Manager) error {
		idx, err := cli.Resolve(m.Model(), "0/0/1")
		require.NoError(t, err)
		return m.Rename(idx, "Home")
	}))

	out.Reset()
	require.NoError(t, runShow(newWorkspace(t), path, false, &out))
	assert.Equal(t, "# Survey\n\n"+
		"- **Collection 0** _Scenario_ `/0/0`\n"+
		"  - **Rail 0** _Rail_ `/0/0/0`\n"+
		"    - **RA** _Point_ `/0/0/0/0`\n"+
		"    - **RB** _Point_ `/0/0/0/1`\n"+
		"  - **Home** _Point_ `/0/0/1`\n", out.String())
}

func TestGraphAgainstStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.wpt")
	w := newWorkspace(t)
	require.NoError(t, runNew(w, path, "", true, false, &bytes.Buffer{}))
	_, err := w.Manager.Commit(context.Background(), "base")
	require.NoError(t, err)

	require.NoError(t, edit(w, path, func(m *session.Manager) error {
		idx, err := cli.Resolve(m.Model(), "0/0")
		require.NoError(t, err)
		return m.Rename(idx, "Origin")
	}))

	var out bytes.Buffer
	require.NoError(t, runGraph(context.Background(), w, path, "base", "0/1", &out))
	assert.Contains(t, out.String(), "graph TD\n")
	assert.Contains(t, out.String(), "class n0_0 changed")
	assert.Contains(t, out.String(), "class n0_1 current")

	out.Reset()
	require.NoError(t, runDocList(context.Background(), w, &out))
	assert.Equal(t, "base\n", out.String())

	out.Reset()
	require.NoError(t, runDocInspect(context.Background(), w, "base", &out))
	assert.Contains(t, out.String(), "**P0**")
	assert.ErrorIs(t, runDocInspect(context.Background(), w, "missing", &out), domain.ErrDocumentNotFound)
}

func TestMoveAndSwapYAML(t *testing.T) {
	b := dsl.New("Flight")
	b.Device("Drone")
	b.Collection("Route").Point("A").Point("B")
	path := testutils.WriteDocument(t, "flight.yaml", b.MustBuild())

	require.NoError(t, edit(newWorkspace(t), path, func(m *session.Manager) error {
		idx, err := cli.Resolve(m.Model(), "0/1")
		require.NoError(t, err)
		return m.SwapIndex(idx)
	}))
	require.NoError(t, edit(newWorkspace(t), path, func(m *session.Manager) error {
		src, err := cli.Resolve(m.Model(), "0/1/0")
		require.NoError(t, err)
		dst, err := cli.Resolve(m.Model(), "0/0")
		require.NoError(t, err)
		return m.MoveIndex(src, -1, dst)
	}))

	var out bytes.Buffer
	require.NoError(t, runShow(newWorkspace(t), path, false, &out))
	assert.Equal(t, "# Flight\n\n"+
		"- **Drone** _Device_ `/0/0`\n"+
		"  - **B** _Point_ `/0/0/0`\n"+
		"- **Route** _Route_ `/0/1`\n"+
		"  - **A** _Point_ `/0/1/0`\n", out.String())
}
