package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/fsplit/internal/fs"
)

// splitFixture writes a main file and a component file the way a split
// would and returns the recorded changes.
func splitFixture(t *testing.T, dir string) (mainPath, compPath string, changes []fs.Change) {
	t.Helper()
	mainPath = filepath.Join(dir, "page.dart")
	require.NoError(t, os.WriteFile(mainPath, []byte("original"), 0644))

	compPath = filepath.Join(dir, "components", "card.dart")
	require.NoError(t, fs.EnsureDir(filepath.Dir(compPath)))

	c1, err := fs.WriteFile(compPath, []byte("card"))
	require.NoError(t, err)
	c2, err := fs.WriteFile(mainPath, []byte("split"))
	require.NoError(t, err)
	return mainPath, compPath, []fs.Change{c1, c2}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	root := t.TempDir()
	work := t.TempDir()
	mainPath, compPath, changes := splitFixture(t, work)

	m, err := New(root)
	require.NoError(t, err)
	require.NoError(t, m.Write(changes))

	// Reload from disk to exercise the state file format.
	m, err = New(root)
	require.NoError(t, err)

	ops, err := m.GetOperationsToUndo()
	require.NoError(t, err)
	require.Len(t, ops, 2)

	undone, failed := m.Undo(ops)
	assert.Empty(t, failed)
	assert.Equal(t, []string{mainPath, compPath}, undone)
	assert.Equal(t, "original", readString(t, mainPath))
	assert.NoFileExists(t, compPath)
	assert.NoDirExists(t, filepath.Dir(compPath), "emptied components dir is removed")

	ops, err = m.GetOperationsToUndo()
	require.NoError(t, err)
	assert.Empty(t, ops, "nothing left to undo")

	ops, err = m.GetOperationsToRedo()
	require.NoError(t, err)
	redone, failed := m.Redo(ops)
	assert.Empty(t, failed)
	assert.Equal(t, []string{compPath, mainPath}, redone)
	assert.Equal(t, "split", readString(t, mainPath))
	assert.Equal(t, "card", readString(t, compPath))

	ops, err = m.GetOperationsToRedo()
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestUndoSkipsFilesChangedSinceSplit(t *testing.T) {
	root := t.TempDir()
	mainPath, compPath, changes := splitFixture(t, t.TempDir())

	m, err := New(root)
	require.NoError(t, err)
	require.NoError(t, m.Write(changes))

	require.NoError(t, os.WriteFile(mainPath, []byte("edited by hand"), 0644))

	ops, err := m.GetOperationsToUndo()
	require.NoError(t, err)
	undone, failed := m.Undo(ops)
	assert.Equal(t, []string{mainPath}, failed)
	assert.Equal(t, []string{compPath}, undone)
	assert.Equal(t, "edited by hand", readString(t, mainPath))
}

func TestWriteTruncatesRedoHistory(t *testing.T) {
	root := t.TempDir()
	_, _, changes := splitFixture(t, t.TempDir())

	m, err := New(root)
	require.NoError(t, err)
	require.NoError(t, m.Write(changes))
	_, err = m.GetOperationsToUndo()
	require.NoError(t, err)

	require.NoError(t, m.Write(changes[:1]))
	assert.Len(t, m.state.History, 1)
	assert.Equal(t, 0, m.state.CurrentIndex)

	ops, err := m.GetOperationsToRedo()
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestLoadRejectsCorruptState(t *testing.T) {
	root := t.TempDir()
	m, err := New(root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(m.statePath, []byte("zero\n"), 0644))
	_, err = New(root)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(m.statePath, []byte("0\n\n17\ncreate\n/x\n"), 0644))
	_, err = New(root)
	assert.Error(t, err)
}
