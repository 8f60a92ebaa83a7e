package nvim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"
)

var (
	// ErrNoServer means no Neovim address was configured or inherited.
	ErrNoServer = errors.New("no Neovim server address")
	// ErrUnnamedBuffer means the current buffer is not backed by a file.
	ErrUnnamedBuffer = errors.New("current Neovim buffer has no file name")
)

// Address picks the server to talk to: the explicit flag value first, then
// $NVIM (set for :terminal jobs), then $NVIM_LISTEN_ADDRESS.
func Address(flag string) string {
	if flag != "" {
		return flag
	}
	if addr := os.Getenv("NVIM"); addr != "" {
		return addr
	}
	return os.Getenv("NVIM_LISTEN_ADDRESS")
}

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim *nvim.Nvim
}

// New connects to a running Neovim instance at addr.
func New(addr string) (*Manager, error) {
	if addr == "" {
		return nil, ErrNoServer
	}
	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nvim at %s: %w", addr, err)
	}
	return &Manager{nvim: v}, nil
}

// Close disconnects from Neovim.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
}

// CurrentDocument returns the file name and the in-memory text of the
// current buffer, including edits that are not saved yet.
func (m *Manager) CurrentDocument() (path string, text string, err error) {
	buf, err := m.nvim.CurrentBuffer()
	if err != nil {
		return "", "", fmt.Errorf("failed to get current buffer: %w", err)
	}
	path, err = m.nvim.BufferName(buf)
	if err != nil {
		return "", "", fmt.Errorf("failed to get buffer name: %w", err)
	}
	if path == "" {
		return "", "", ErrUnnamedBuffer
	}

	lines, err := m.nvim.BufferLines(buf, 0, -1, true)
	if err != nil {
		return "", "", fmt.Errorf("failed to read buffer lines: %w", err)
	}
	return path, string(bytes.Join(lines, []byte("\n"))) + "\n", nil
}

// ReloadDocument re-reads path from disk into its buffer, discarding the
// buffer's previous content. Files without a loaded buffer are left alone.
func (m *Manager) ReloadDocument(path string) error {
	var bufnr int
	if err := m.nvim.Call("bufnr", &bufnr, path); err != nil {
		return fmt.Errorf("failed to look up buffer for %s: %w", path, err)
	}
	if bufnr < 0 {
		return nil
	}

	var escaped string
	if err := m.nvim.Call("fnameescape", &escaped, path); err != nil {
		return fmt.Errorf("failed to escape %s: %w", path, err)
	}

	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("buffer %d", bufnr))
	b.Command(fmt.Sprintf("edit! %s", escaped))
	if err := b.Execute(); err != nil {
		return fmt.Errorf("failed to reload %s: %w", path, err)
	}
	return nil
}

// Notify shows msg in the editor's message area.
func (m *Manager) Notify(msg string) error {
	return m.nvim.WriteOut(msg + "\n")
}
