// Package splitter moves every widget class after the first one out of a
// Dart source into its own file. All functions work on text only; files are
// handed to an Emitter and the caller decides where they go.
package splitter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sokinpui/fsplit/internal/logging"
	"github.com/sokinpui/fsplit/internal/parser"
	"github.com/sokinpui/fsplit/model"
)

// DefaultComponentsDir is the directory, relative to the edited file, that
// receives relocated classes.
const DefaultComponentsDir = "components"

// Decider answers rename prompts. It is called once per private component,
// in discovery order, and never concurrently.
type Decider interface {
	Decide(ctx context.Context, prompt string) (model.Choice, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, prompt string) (model.Choice, error)

func (f DeciderFunc) Decide(ctx context.Context, prompt string) (model.Choice, error) {
	return f(ctx, prompt)
}

// Fixed returns a Decider that always gives the same answer.
func Fixed(choice model.Choice) Decider {
	return DeciderFunc(func(context.Context, string) (model.Choice, error) {
		return choice, nil
	})
}

// Emitter receives each component file as soon as it is ready.
type Emitter interface {
	Emit(file model.ComponentFile) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(file model.ComponentFile) error

func (f EmitterFunc) Emit(file model.ComponentFile) error {
	return f(file)
}

// Collector is an Emitter that keeps every file in memory.
type Collector struct {
	Files []model.ComponentFile
}

func (c *Collector) Emit(file model.ComponentFile) error {
	c.Files = append(c.Files, file)
	return nil
}

// Options configures a split.
type Options struct {
	// ComponentsDir is a slash-separated path relative to the edited file.
	ComponentsDir string
	Logger        *slog.Logger
}

func (o Options) componentsDir() string {
	if strings.Trim(o.ComponentsDir, "/") == "" {
		return DefaultComponentsDir
	}
	return strings.Trim(o.ComponentsDir, "/")
}

// Result is the outcome of a completed split.
type Result struct {
	MainWidget string
	Components []model.ComponentFile
	// Renamed lists the private identifiers that were made public.
	Renamed    []string
	NewImports []string
	// MainText is the final content of the edited file.
	MainText string
}

// Split runs the whole pipeline over text. Component files are emitted in
// discovery order while the pass runs; an error from the decider or the
// emitter aborts the remaining pass and no main text is produced. CRLF line
// endings are read as LF and every output uses LF.
func Split(ctx context.Context, text string, opts Options, decider Decider, emitter Emitter) (*Result, error) {
	log := logging.OrDiscard(opts.Logger)
	dir := opts.componentsDir()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	extracted := parser.Extract(text)
	main, components := Classify(extracted.Classes)
	adjusted := AdjustImports(extracted.Imports, Depth(dir))

	result := &Result{}
	if main != nil {
		result.MainWidget = main.Name
	}
	log.Debug("extracted source",
		slog.Int("imports", len(extracted.Imports)),
		slog.Int("classes", len(extracted.Classes)),
		slog.String("main", result.MainWidget))

	// Spans are cut before any rename touches the text they were matched in.
	working := RemoveSpans(text, components)
	pending := make([]string, len(components))
	for i, c := range components {
		pending[i] = c.Span
	}

	for i, c := range components {
		content := pending[i]
		identifier := c.Identifier()
		if c.Private {
			choice, err := decider.Decide(ctx, Prompt(c))
			if err != nil {
				return nil, fmt.Errorf("failed to get rename decision for %s: %w", identifier, err)
			}
			var renamed bool
			content, working, renamed = Rename(c, content, working, choice)
			if renamed {
				result.Renamed = append(result.Renamed, identifier)
				identifier = c.Name
				for j := i + 1; j < len(pending); j++ {
					pending[j] = RenameReferences(c, pending[j])
				}
			}
			log.Debug("rename decision", slog.String("class", c.Identifier()), slog.Bool("renamed", renamed))
		}

		file := model.ComponentFile{
			ClassName: identifier,
			FileName:  FileName(c.Name),
			Content:   ComponentContent(adjusted, content),
		}
		if emitter != nil {
			if err := emitter.Emit(file); err != nil {
				return nil, fmt.Errorf("failed to write component %s: %w", file.FileName, err)
			}
		}
		result.Components = append(result.Components, file)
		result.NewImports = append(result.NewImports, ImportLine(dir, file.FileName))
	}

	result.MainText = Assemble(working, result.NewImports)
	return result, nil
}

// RemoveSpans cuts the components out of text by offset, last first, so
// earlier offsets stay valid.
func RemoveSpans(text string, components []model.ClassMatch) string {
	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]
		end := c.Offset + len(c.Span)
		if c.Offset < 0 || end > len(text) || text[c.Offset:end] != c.Span {
			text = strings.Replace(text, c.Span, "", 1)
			continue
		}
		text = text[:c.Offset] + text[end:]
	}
	return text
}

// Classify splits the classes into the main widget, which stays in place,
// and the components to relocate. main is nil when classes is empty.
func Classify(classes []model.ClassMatch) (main *model.ClassMatch, components []model.ClassMatch) {
	if len(classes) == 0 {
		return nil, nil
	}
	first := classes[0]
	return &first, classes[1:]
}
