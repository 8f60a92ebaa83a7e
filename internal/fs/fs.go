package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sokinpui/fsplit/model"
)

const (
	ActionCreate = "create"
	ActionModify = "modify"
)

// ErrFileNameCollision is returned when two different classes derive the
// same component file name and the policy forbids overwriting.
var ErrFileNameCollision = errors.New("component file name collision")

// CollisionPolicy decides what happens when a run writes the same component
// file twice.
type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionError     CollisionPolicy = "error"
)

// ParseCollisionPolicy validates a policy name. An empty name means overwrite.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionError:
		return CollisionError, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (want %q or %q)", s, CollisionOverwrite, CollisionError)
	}
}

// Change records one file write with the content it replaced.
type Change struct {
	Path   string
	Action string
	Before []byte // nil when the file was created
	After  []byte
}

// EnsureDir creates dir and any missing parents. Existing directories are fine.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile replaces the content of path and reports what was there before.
func WriteFile(path string, content []byte) (Change, error) {
	change := Change{Path: path, Action: ActionCreate, After: content}

	before, err := os.ReadFile(path)
	switch {
	case err == nil:
		change.Action = ActionModify
		change.Before = before
	case !os.IsNotExist(err):
		return Change{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return Change{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return change, nil
}

// ComponentWriter writes component files into one directory as they are
// emitted. It satisfies splitter.Emitter.
type ComponentWriter struct {
	dir     string
	policy  CollisionPolicy
	owners  map[string]string
	changes []Change
}

// NewComponentWriter creates a writer for dir. The directory is created on
// the first write if EnsureDir was not called before.
func NewComponentWriter(dir string, policy CollisionPolicy) *ComponentWriter {
	return &ComponentWriter{
		dir:    dir,
		policy: policy,
		owners: make(map[string]string),
	}
}

// Emit writes one component file, replacing any file of the same name.
func (w *ComponentWriter) Emit(file model.ComponentFile) error {
	if owner, ok := w.owners[file.FileName]; ok && owner != file.ClassName && w.policy == CollisionError {
		return fmt.Errorf("%w: %s and %s both map to %s", ErrFileNameCollision, owner, file.ClassName, file.FileName)
	}

	if err := EnsureDir(w.dir); err != nil {
		return err
	}
	change, err := WriteFile(filepath.Join(w.dir, file.FileName), []byte(file.Content))
	if err != nil {
		return err
	}
	w.owners[file.FileName] = file.ClassName
	w.changes = append(w.changes, change)
	return nil
}

// Changes returns the writes performed so far, in order.
func (w *ComponentWriter) Changes() []Change {
	return w.changes
}

// GetFileSHA256 returns the hex SHA-256 of a file's content.
func GetFileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsEmpty reports whether a directory has no entries.
func IsEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}
