package fsplit

import (
	"context"
	"fmt"

	"github.com/sokinpui/fsplit/cli"
	"github.com/sokinpui/fsplit/internal/splitter"
	"github.com/sokinpui/fsplit/model"
)

// Options for using fsplit as a library.
type Options struct {
	// Directory for relocated classes, relative to the edited file. Defaults
	// to "components".
	ComponentsDir string
	// Confirm answers "Make private widget X public?" prompts. Nil keeps every
	// private widget private.
	Confirm func(prompt string) bool
}

// Result is the outcome of an in-memory split.
type Result struct {
	MainWidget string
	// Components holds one file per relocated class, in source order.
	Components []model.ComponentFile
	// Renamed lists private identifiers that were made public.
	Renamed []string
	// MainText is the new content of the edited file.
	MainText string
}

func (o Options) decider() splitter.Decider {
	return splitter.DeciderFunc(func(_ context.Context, prompt string) (model.Choice, error) {
		if o.Confirm != nil && o.Confirm(prompt) {
			return model.ChoiceConfirm, nil
		}
		return model.ChoiceDecline, nil
	})
}

func (o Options) componentsDir() string {
	if o.ComponentsDir == "" {
		return splitter.DefaultComponentsDir
	}
	return o.ComponentsDir
}

// Split separates text without touching the filesystem.
func Split(text string, opts Options) (*Result, error) {
	res, err := splitter.Split(context.Background(), text, splitter.Options{ComponentsDir: opts.componentsDir()}, opts.decider(), nil)
	if err != nil {
		return nil, err
	}
	return &Result{
		MainWidget: res.MainWidget,
		Components: res.Components,
		Renamed:    res.Renamed,
		MainText:   res.MainText,
	}, nil
}

// Apply splits the Dart file at path on disk and records the operation for
// undo. It returns a summary of the operations in a map.
func Apply(path string, opts Options) (map[string][]string, error) {
	cfg := &cli.Config{
		Path:          path,
		Rename:        cli.RenameNone,
		ComponentsDir: opts.componentsDir(),
		Collision:     cli.CollisionOverwrite,
	}

	app := newApp(cfg)
	defer app.Close()
	app.SetDecider(opts.decider())

	summary, err := app.Execute(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to split %s: %w", path, err)
	}

	result := map[string][]string{
		"Created":  summary.Created,
		"Modified": summary.Modified,
		"Renamed":  summary.Renamed,
	}
	return result, nil
}
