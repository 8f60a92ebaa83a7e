package nvim

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/neovim/go-client/nvim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	t.Setenv("NVIM", "")
	t.Setenv("NVIM_LISTEN_ADDRESS", "")
	assert.Equal(t, "", Address(""))

	t.Setenv("NVIM_LISTEN_ADDRESS", "/tmp/legacy.sock")
	assert.Equal(t, "/tmp/legacy.sock", Address(""))

	t.Setenv("NVIM", "/tmp/nvim.sock")
	assert.Equal(t, "/tmp/nvim.sock", Address(""))
	assert.Equal(t, "127.0.0.1:6666", Address("127.0.0.1:6666"))
}

func TestNewWithoutAddress(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoServer)
}

// embedded starts a child Neovim, skipping the test when nvim is not installed.
func embedded(t *testing.T) *Manager {
	t.Helper()
	if _, err := exec.LookPath("nvim"); err != nil {
		t.Skip("nvim not found in PATH")
	}
	v, err := nvim.NewChildProcess(nvim.ChildProcessArgs("-u", "NONE", "-n", "--embed", "--headless", "--noplugin"))
	require.NoError(t, err)
	m := &Manager{nvim: v}
	t.Cleanup(m.Close)
	return m
}

func TestCurrentDocumentAndReload(t *testing.T) {
	m := embedded(t)

	path := filepath.Join(t.TempDir(), "page.dart")
	require.NoError(t, os.WriteFile(path, []byte("class A extends B {\n}\n"), 0644))
	require.NoError(t, m.nvim.Command("edit "+path))

	buf, err := m.nvim.CurrentBuffer()
	require.NoError(t, err)
	require.NoError(t, m.nvim.SetBufferLines(buf, 0, -1, true, [][]byte{[]byte("// unsaved"), []byte("class A extends B {"), []byte("}")}))

	gotPath, text, err := m.CurrentDocument()
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, "// unsaved\nclass A extends B {\n}\n", text)

	require.NoError(t, os.WriteFile(path, []byte("rewritten\n"), 0644))
	require.NoError(t, m.ReloadDocument(path))

	lines, err := m.nvim.BufferLines(buf, 0, -1, true)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "rewritten", string(lines[0]))

	assert.NoError(t, m.ReloadDocument(filepath.Join(t.TempDir(), "not-loaded.dart")))
}
