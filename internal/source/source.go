package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/fsplit/internal/parser"
)

var (
	// ErrNoDocument means there is no active document to operate on.
	ErrNoDocument = errors.New("no active document")
	// ErrEmptySource means stdin or the clipboard held no text.
	ErrEmptySource = errors.New("source is empty")
)

const (
	OriginDisk      = "disk"
	OriginEditor    = "nvim"
	OriginStdin     = "stdin"
	OriginClipboard = "clipboard"
)

// Document is the file being split and the text to split it from.
type Document struct {
	Path   string // absolute path of the file that will be rewritten
	Text   string
	Origin string
}

// Editor exposes the editor's active buffer.
type Editor interface {
	CurrentDocument() (path string, text string, err error)
}

// Options selects where the document text comes from.
type Options struct {
	Path      string
	Stdin     bool
	Clipboard bool
}

// SourceProvider determines and retrieves the document.
type SourceProvider struct {
	stdin         io.Reader
	readClipboard func() (string, error)
	editor        Editor
}

// New creates a SourceProvider. editor may be nil when no editor is reachable.
func New(stdin io.Reader, editor Editor) *SourceProvider {
	return &SourceProvider{
		stdin:         stdin,
		readClipboard: clipboard.ReadAll,
		editor:        editor,
	}
}

// GetDocument resolves the document: stdin or clipboard text for the given
// path when requested, else the file on disk, else the editor's buffer.
func (sp *SourceProvider) GetDocument(opts Options) (*Document, error) {
	var (
		path, text, origin string
		err                error
	)

	switch {
	case opts.Stdin || opts.Clipboard:
		if opts.Path == "" {
			return nil, fmt.Errorf("%w: a file path is required when reading from stdin or the clipboard", ErrNoDocument)
		}
		path = opts.Path
		origin = OriginStdin
		if opts.Clipboard {
			origin = OriginClipboard
		}
		text, err = sp.readPasted(opts.Clipboard, filepath.Base(opts.Path))
		if err != nil {
			return nil, err
		}

	case opts.Path != "":
		path, origin = opts.Path, OriginDisk
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		text = string(content)

	case sp.editor != nil:
		origin = OriginEditor
		path, text, err = sp.editor.CurrentDocument()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
		}

	default:
		return nil, ErrNoDocument
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Document{
		Path:   abs,
		Text:   strings.ReplaceAll(text, "\r\n", "\n"),
		Origin: origin,
	}, nil
}

// readPasted reads stdin or the clipboard. Pasted markdown is reduced to the
// Dart code block for fileName, or its first Dart block.
func (sp *SourceProvider) readPasted(fromClipboard bool, fileName string) (string, error) {
	var content string
	if fromClipboard {
		c, err := sp.readClipboard()
		if err != nil {
			return "", fmt.Errorf("failed to read from clipboard: %w", err)
		}
		content = c
	} else {
		c, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		content = string(c)
	}

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptySource
	}
	if parser.HasFence(content) {
		if block, ok := parser.ExtractDartBlock([]byte(content), fileName); ok {
			return block, nil
		}
	}
	return content, nil
}
