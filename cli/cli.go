package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const (
	RenameAsk  = "ask"
	RenameAll  = "all"
	RenameNone = "none"

	CollisionOverwrite = "overwrite"
	CollisionError     = "error"
)

// ErrInvalidConfig wraps every flag or config file validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the command-line flag values.
type Config struct {
	Path          string
	Rename        string
	ComponentsDir string
	Collision     string
	DryRun        bool
	Stdin         bool
	Clipboard     bool
	Server        string
	Undo          bool
	Redo          bool
	ConfigFile    string
	Verbose       bool
}

// ParseFlags parses the process arguments.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:], os.Stdout)
}

// ParseArgs defines and parses command-line flags using pflag, then fills
// unset flags from the config file.
func ParseArgs(args []string, usageOut io.Writer) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("fsplit", pflag.ContinueOnError)
	flags.SetOutput(usageOut)

	// Define flags
	flags.StringVar(&cfg.Rename, "rename", RenameAsk, "Private widgets: 'ask' for each, make 'all' public, or keep them private with 'none'.")
	flags.StringVarP(&cfg.ComponentsDir, "components-dir", "d", "components", "Directory, relative to the file, that receives the extracted widgets.")
	flags.StringVar(&cfg.Collision, "collision", CollisionOverwrite, "When two widgets map to the same file name: 'overwrite' or 'error'.")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Show the planned changes without writing anything.")
	flags.BoolVar(&cfg.Stdin, "stdin", false, "Read the source text from stdin instead of the file.")
	flags.BoolVarP(&cfg.Clipboard, "clipboard", "c", false, "Read the source text from the clipboard instead of the file.")
	flags.StringVar(&cfg.Server, "server", "", "Neovim server address (default: $NVIM or $NVIM_LISTEN_ADDRESS).")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file (default: .fsplit.yaml in the working directory).")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log diagnostic details to stderr.")

	// Mutually exclusive history group
	flags.BoolVarP(&cfg.Undo, "undo", "u", false, "Undo the last split.")
	flags.BoolVarP(&cfg.Redo, "redo", "r", false, "Redo the last undone split.")

	flags.Usage = func() {
		fmt.Fprintln(usageOut, "Usage: fsplit [flags] [file.dart]")
		fmt.Fprintln(usageOut, "\nMove every widget after the first one into its own file under components/.")
		fmt.Fprintln(usageOut, "Without a file, the current Neovim buffer is used.")
		fmt.Fprintln(usageOut, "\nExample: fsplit lib/home_page.dart")
		fmt.Fprintln(usageOut, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	switch flags.NArg() {
	case 0:
	case 1:
		cfg.Path = flags.Arg(0)
	default:
		return nil, fmt.Errorf("%w: expected at most one file, got %d", ErrInvalidConfig, flags.NArg())
	}

	file, err := LoadFile(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	file.apply(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values and flag combinations.
func (c *Config) Validate() error {
	if c.Undo && c.Redo {
		return fmt.Errorf("%w: --undo and --redo are mutually exclusive", ErrInvalidConfig)
	}
	if c.Stdin && c.Clipboard {
		return fmt.Errorf("%w: --stdin and --clipboard are mutually exclusive", ErrInvalidConfig)
	}
	switch c.Rename {
	case RenameAsk, RenameAll, RenameNone:
	default:
		return fmt.Errorf("%w: --rename must be ask, all or none, got %q", ErrInvalidConfig, c.Rename)
	}
	switch c.Collision {
	case CollisionOverwrite, CollisionError:
	default:
		return fmt.Errorf("%w: --collision must be overwrite or error, got %q", ErrInvalidConfig, c.Collision)
	}
	if c.ComponentsDir == "" {
		return fmt.Errorf("%w: --components-dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
