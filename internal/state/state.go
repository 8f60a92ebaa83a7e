package state

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sokinpui/fsplit/internal/fs"
)

const (
	stateDirName  = ".fsplit"
	stateFileName = "state.fsplit"
	ObjectsDir    = "objects"

	noHash = "-"
)

// Operation is one file touched by a split.
type Operation struct {
	Path       string
	Action     string // fs.ActionCreate or fs.ActionModify
	BeforeHash string // empty for created files
	AfterHash  string
}

// HistoryEntry represents one complete run of the tool.
type HistoryEntry struct {
	Timestamp  int64
	Operations []Operation
}

// State represents the entire state file.
type State struct {
	History      []HistoryEntry
	CurrentIndex int
}

// Manager handles the lifecycle of the state file and its content objects.
type Manager struct {
	statePath string
	state     *State
	StateDir  string
}

// FindRoot returns the git top-level directory, or the working directory
// outside a repository.
func FindRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err == nil {
		return strings.TrimSpace(string(output)), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not get current working directory: %w", err)
	}
	return wd, nil
}

// New creates and loads a state manager rooted at rootDir.
func New(rootDir string) (*Manager, error) {
	stateDir := filepath.Join(rootDir, stateDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, ObjectsDir), 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}
	m := &Manager{
		statePath: filepath.Join(stateDir, stateFileName),
		StateDir:  stateDir,
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load() error {
	m.state = &State{CurrentIndex: -1}

	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not read state file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")
	if len(blocks) == 0 || strings.TrimSpace(blocks[0]) == "" {
		return nil
	}

	// First block is current index
	index, err := strconv.Atoi(strings.TrimSpace(blocks[0]))
	if err != nil {
		return fmt.Errorf("invalid state file: could not parse current index: %w", err)
	}

	var history []HistoryEntry
	for _, block := range blocks[1:] {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")

		ts, err := strconv.ParseInt(lines[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid state file: could not parse timestamp from '%s': %w", lines[0], err)
		}

		entry := HistoryEntry{Timestamp: ts}
		opLines := lines[1:]
		if len(opLines)%4 != 0 {
			return fmt.Errorf("invalid state file: incomplete operation record")
		}
		for i := 0; i < len(opLines); i += 4 {
			entry.Operations = append(entry.Operations, Operation{
				Action:     opLines[i],
				Path:       opLines[i+1],
				BeforeHash: fromField(opLines[i+2]),
				AfterHash:  fromField(opLines[i+3]),
			})
		}
		history = append(history, entry)
	}

	if index >= len(history) {
		return fmt.Errorf("invalid state file: index %d out of range", index)
	}
	m.state = &State{CurrentIndex: index, History: history}
	return nil
}

func (m *Manager) save() error {
	blocks := []string{strconv.Itoa(m.state.CurrentIndex)}

	for _, entry := range m.state.History {
		lines := []string{strconv.FormatInt(entry.Timestamp, 10)}
		for _, op := range entry.Operations {
			lines = append(lines, op.Action, op.Path, toField(op.BeforeHash), toField(op.AfterHash))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	content := strings.Join(blocks, "\n\n") + "\n"
	if err := os.WriteFile(m.statePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not write state file: %w", err)
	}
	return nil
}

func toField(hash string) string {
	if hash == "" {
		return noHash
	}
	return hash
}

func fromField(field string) string {
	if field == noHash {
		return ""
	}
	return field
}

// Write stores the contents of the changes and adds them to the history as
// one entry. Entries after the current position are discarded.
func (m *Manager) Write(changes []fs.Change) error {
	ops := make([]Operation, 0, len(changes))
	for _, c := range changes {
		op := Operation{Path: c.Path, Action: c.Action}
		if c.Action == fs.ActionModify {
			hash, err := m.storeObject(c.Before)
			if err != nil {
				return err
			}
			op.BeforeHash = hash
		}
		hash, err := m.storeObject(c.After)
		if err != nil {
			return err
		}
		op.AfterHash = hash
		ops = append(ops, op)
	}

	if m.state.CurrentIndex < len(m.state.History)-1 {
		m.state.History = m.state.History[:m.state.CurrentIndex+1]
	}
	m.state.History = append(m.state.History, HistoryEntry{
		Timestamp:  time.Now().UTC().Unix(),
		Operations: ops,
	})
	m.state.CurrentIndex++
	return m.save()
}

// GetOperationsToUndo gets the last operations and moves the history pointer.
func (m *Manager) GetOperationsToUndo() ([]Operation, error) {
	if m.state.CurrentIndex < 0 {
		return nil, nil
	}
	ops := m.state.History[m.state.CurrentIndex].Operations
	m.state.CurrentIndex--
	return ops, m.save()
}

// GetOperationsToRedo gets the next operations and moves the history pointer.
func (m *Manager) GetOperationsToRedo() ([]Operation, error) {
	nextIndex := m.state.CurrentIndex + 1
	if nextIndex >= len(m.state.History) {
		return nil, nil
	}
	m.state.CurrentIndex = nextIndex
	return m.state.History[nextIndex].Operations, m.save()
}

// Undo restores the content each operation replaced, newest first. A file
// is left alone when it changed since the split.
func (m *Manager) Undo(ops []Operation) (undone, failed []string) {
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		if err := m.undo(op); err != nil {
			failed = append(failed, op.Path)
			continue
		}
		undone = append(undone, op.Path)
	}
	return undone, failed
}

func (m *Manager) undo(op Operation) error {
	// Core safety check: if the file has been changed, abort the undo for this file.
	current, err := fs.GetFileSHA256(op.Path)
	if err != nil {
		return err
	}
	if current != op.AfterHash {
		return fmt.Errorf("%s changed since the split", op.Path)
	}

	if op.Action == fs.ActionCreate {
		if err := os.Remove(op.Path); err != nil {
			return err
		}
		// Attempt to remove parent directory if it's empty
		parentDir := filepath.Dir(op.Path)
		if isEmpty, _ := fs.IsEmpty(parentDir); isEmpty {
			os.Remove(parentDir)
		}
		return nil
	}

	return m.restoreObject(op.BeforeHash, op.Path)
}

// Redo re-applies each operation in order. A file is left alone when it no
// longer holds the content the split started from.
func (m *Manager) Redo(ops []Operation) (redone, failed []string) {
	for _, op := range ops {
		if err := m.redo(op); err != nil {
			failed = append(failed, op.Path)
			continue
		}
		redone = append(redone, op.Path)
	}
	return redone, failed
}

func (m *Manager) redo(op Operation) error {
	current, err := fs.GetFileSHA256(op.Path)
	switch {
	case op.Action == fs.ActionCreate:
		if err == nil {
			return fmt.Errorf("%s already exists", op.Path)
		}
		if !os.IsNotExist(err) {
			return err
		}
		if err := fs.EnsureDir(filepath.Dir(op.Path)); err != nil {
			return err
		}
	case err != nil:
		return err
	case current != op.BeforeHash:
		return fmt.Errorf("%s changed since the undo", op.Path)
	}

	return m.restoreObject(op.AfterHash, op.Path)
}

func (m *Manager) objectPath(hash string) string {
	return filepath.Join(m.StateDir, ObjectsDir, hash)
}

func (m *Manager) storeObject(content []byte) (string, error) {
	hash := fs.HashBytes(content)
	path := m.objectPath(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("could not store object: %w", err)
	}
	return hash, nil
}

func (m *Manager) restoreObject(hash, dest string) error {
	if hash == "" {
		return errors.New("no stored content for " + dest)
	}
	content, err := os.ReadFile(m.objectPath(hash))
	if err != nil {
		return fmt.Errorf("could not read object %s: %w", hash, err)
	}
	return os.WriteFile(dest, content, 0644)
}
