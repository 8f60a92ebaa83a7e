package fsplit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"golang.org/x/term"

	"github.com/sokinpui/fsplit/cli"
	"github.com/sokinpui/fsplit/internal/fs"
	"github.com/sokinpui/fsplit/internal/logging"
	"github.com/sokinpui/fsplit/internal/nvim"
	"github.com/sokinpui/fsplit/internal/preview"
	"github.com/sokinpui/fsplit/internal/source"
	"github.com/sokinpui/fsplit/internal/splitter"
	"github.com/sokinpui/fsplit/internal/state"
	"github.com/sokinpui/fsplit/internal/tui"
	"github.com/sokinpui/fsplit/internal/ui"
	"github.com/sokinpui/fsplit/model"
)

// App orchestrates the entire application logic.
type App struct {
	cfg       *cli.Config
	log       *slog.Logger
	out       io.Writer
	editor    *nvim.Manager
	tty       *os.File
	source    *source.SourceProvider
	decider   splitter.Decider
	stateRoot string
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance wired to the process streams and, when an
// address is known, to a running Neovim.
func New(cfg *cli.Config) (*App, error) {
	a := newApp(cfg)
	if cfg.Undo || cfg.Redo {
		return a, nil
	}

	addr := nvim.Address(cfg.Server)
	if addr == "" {
		return a, nil
	}
	manager, err := nvim.New(addr)
	if err != nil {
		if cfg.Path == "" && !cfg.Stdin && !cfg.Clipboard {
			return nil, fmt.Errorf("%w: %v", source.ErrNoDocument, err)
		}
		a.log.Warn("continuing without editor", slog.String("error", err.Error()))
		return a, nil
	}
	a.editor = manager
	a.source = source.New(os.Stdin, manager)
	return a, nil
}

// newApp builds an App that works on disk only.
func newApp(cfg *cli.Config) *App {
	a := &App{
		cfg: cfg,
		log: logging.New(os.Stderr, "fsplit", cfg.Verbose),
		out: os.Stdout,
	}
	a.source = source.New(os.Stdin, nil)
	a.decider = a.newDecider()
	return a
}

// Close releases the editor connection and the prompt terminal.
func (a *App) Close() {
	if a.editor != nil {
		a.editor.Close()
		a.editor = nil
	}
	if a.tty != nil {
		a.tty.Close()
		a.tty = nil
	}
}

// SetDecider replaces the rename prompt.
func (a *App) SetDecider(d splitter.Decider) {
	a.decider = d
}

// SetOutput redirects dry-run previews.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

func (a *App) newDecider() splitter.Decider {
	switch a.cfg.Rename {
	case cli.RenameAll:
		return splitter.Fixed(model.ChoiceConfirm)
	case cli.RenameNone:
		return splitter.Fixed(model.ChoiceDecline)
	}

	in := os.Stdin
	if a.cfg.Stdin {
		// stdin carries the document, so keys come from the terminal itself.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			a.log.Warn("no terminal for prompts; private widgets stay private")
			return splitter.Fixed("")
		}
		a.tty = tty
		in = tty
	}
	if !term.IsTerminal(int(in.Fd())) {
		a.log.Warn("stdin is not a terminal; private widgets stay private")
		return splitter.Fixed("")
	}
	return tui.NewConfirmer(in, os.Stderr)
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute(ctx context.Context) (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Undo:
		return a.undoLastOperation()
	case a.cfg.Redo:
		return a.redoLastOperation()
	default:
		return a.split(ctx)
	}
}

// split reads the active document, writes one file per component and then
// rewrites the document.
func (a *App) split(ctx context.Context) (model.Summary, error) {
	doc, err := a.source.GetDocument(source.Options{
		Path:      a.cfg.Path,
		Stdin:     a.cfg.Stdin,
		Clipboard: a.cfg.Clipboard,
	})
	if err != nil {
		return model.Summary{}, err
	}
	a.log.Debug("document loaded", slog.String("path", doc.Path), slog.String("origin", doc.Origin))

	opts := splitter.Options{ComponentsDir: a.cfg.ComponentsDir, Logger: a.log}
	componentsDir := filepath.Join(filepath.Dir(doc.Path), filepath.FromSlash(a.cfg.ComponentsDir))

	if a.cfg.DryRun {
		return a.dryRun(ctx, doc, opts)
	}

	policy, err := fs.ParseCollisionPolicy(a.cfg.Collision)
	if err != nil {
		return model.Summary{}, err
	}
	if err := fs.EnsureDir(componentsDir); err != nil {
		return model.Summary{}, err
	}

	writer := fs.NewComponentWriter(componentsDir, policy)
	res, err := splitter.Split(ctx, doc.Text, opts, a.decider, writer)
	if err != nil {
		// Component files written before the fault stay on disk; journal
		// them so they can still be undone.
		a.record(writer.Changes())
		summary := summarize(writer.Changes())
		a.relativizeSummaryPaths(&summary)
		return summary, err
	}

	mainChange, err := fs.WriteFile(doc.Path, []byte(res.MainText))
	if err != nil {
		a.record(writer.Changes())
		return model.Summary{}, err
	}
	changes := append(writer.Changes(), mainChange)
	a.record(changes)

	message := fmt.Sprintf("Flutter components have been separated! Main widget: %s", res.MainWidget)
	if a.editor != nil {
		if err := a.editor.ReloadDocument(doc.Path); err != nil {
			a.log.Warn("failed to reload buffer", slog.String("path", doc.Path), slog.String("error", err.Error()))
		}
		if err := a.editor.Notify(message); err != nil {
			a.log.Warn("failed to notify editor", slog.String("error", err.Error()))
		}
	}

	summary := summarize(changes)
	summary.MainWidget = res.MainWidget
	summary.Renamed = res.Renamed
	summary.Message = message
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

// dryRun runs the pipeline against an in-memory collector and prints the
// planned changes.
func (a *App) dryRun(ctx context.Context, doc *source.Document, opts splitter.Options) (model.Summary, error) {
	res, err := splitter.Split(ctx, doc.Text, opts, a.decider, &splitter.Collector{})
	if err != nil {
		return model.Summary{}, err
	}

	rendered, err := preview.Render(a.relative(doc.Path), a.cfg.ComponentsDir, doc.Text, res.MainText, res.Components)
	if err != nil {
		return model.Summary{}, err
	}
	fmt.Fprint(a.out, rendered)

	return model.Summary{
		MainWidget: res.MainWidget,
		Renamed:    res.Renamed,
		Message:    fmt.Sprintf("Dry run: nothing was written. Main widget: %s", res.MainWidget),
	}, nil
}

func summarize(changes []fs.Change) model.Summary {
	var summary model.Summary
	for _, c := range changes {
		if c.Action == fs.ActionCreate {
			summary.Created = append(summary.Created, c.Path)
		} else {
			summary.Modified = append(summary.Modified, c.Path)
		}
	}
	return summary
}

// record adds changes to the undo history. Failures only cost the ability to
// undo, so they are logged rather than returned.
func (a *App) record(changes []fs.Change) {
	if len(changes) == 0 {
		return
	}
	manager, err := a.stateManager()
	if err == nil {
		err = manager.Write(changes)
	}
	if err != nil {
		a.log.Warn("failed to record history; undo will not be available", slog.String("error", err.Error()))
	}
}

func (a *App) stateManager() (*state.Manager, error) {
	root := a.stateRoot
	if root == "" {
		var err error
		if root, err = state.FindRoot(); err != nil {
			return nil, err
		}
	}
	return state.New(root)
}

// undoLastOperation handles the undo logic.
func (a *App) undoLastOperation() (model.Summary, error) {
	manager, err := a.stateManager()
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize state manager: %w", err)
	}
	ops, err := manager.GetOperationsToUndo()
	if err != nil {
		return model.Summary{}, err
	}
	if len(ops) == 0 {
		return model.Summary{Message: "No operation to undo."}, nil
	}

	undone, failed := manager.Undo(ops)
	ui.PrintUndoSummary(a.relativeAll(undone), a.relativeAll(failed))

	summary := model.Summary{
		Modified: undone,
		Failed:   failed,
		Message:  "Undid last split.",
	}
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

// redoLastOperation handles the redo logic.
func (a *App) redoLastOperation() (model.Summary, error) {
	manager, err := a.stateManager()
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize state manager: %w", err)
	}
	ops, err := manager.GetOperationsToRedo()
	if err != nil {
		return model.Summary{}, err
	}
	if len(ops) == 0 {
		return model.Summary{Message: "No operation to redo."}, nil
	}

	redone, failed := manager.Redo(ops)
	ui.PrintRedoSummary(a.relativeAll(redone), a.relativeAll(failed))

	summary := model.Summary{
		Modified: redone,
		Failed:   failed,
		Message:  "Redid last undone split.",
	}
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

func (a *App) relative(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil {
		return p // Fallback to absolute path
	}
	return rel
}

func (a *App) relativeAll(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	rel := make([]string, len(paths))
	for i, p := range paths {
		rel[i] = a.relative(p)
	}
	return rel
}

// relativizeSummaryPaths converts absolute file paths in a summary to be
// relative to the current working directory for cleaner display.
func (a *App) relativizeSummaryPaths(summary *model.Summary) {
	summary.Created = a.relativeAll(summary.Created)
	summary.Modified = a.relativeAll(summary.Modified)
	summary.Failed = a.relativeAll(summary.Failed)
}
