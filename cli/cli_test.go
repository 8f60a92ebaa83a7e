package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no stray
// .fsplit.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestParseArgsDefaults(t *testing.T) {
	inTempDir(t)
	cfg, err := ParseArgs([]string{"lib/page.dart"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "lib/page.dart", cfg.Path)
	assert.Equal(t, RenameAsk, cfg.Rename)
	assert.Equal(t, "components", cfg.ComponentsDir)
	assert.Equal(t, CollisionOverwrite, cfg.Collision)
	assert.False(t, cfg.DryRun)
}

func TestParseArgsFlags(t *testing.T) {
	inTempDir(t)
	cfg, err := ParseArgs([]string{"-n", "--rename=all", "-d", "widgets", "--collision", "error", "-c", "page.dart"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Clipboard)
	assert.Equal(t, RenameAll, cfg.Rename)
	assert.Equal(t, "widgets", cfg.ComponentsDir)
	assert.Equal(t, CollisionError, cfg.Collision)
}

func TestParseArgsInvalid(t *testing.T) {
	inTempDir(t)
	tests := map[string][]string{
		"undo and redo":  {"-u", "-r"},
		"stdin and clip": {"--stdin", "--clipboard", "a.dart"},
		"bad rename":     {"--rename", "sometimes"},
		"bad collision":  {"--collision", "merge"},
		"empty dir":      {"--components-dir", ""},
		"two files":      {"a.dart", "b.dart"},
		"missing config": {"--config", "nope.yaml"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArgs(args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	inTempDir(t)
	_, err := ParseArgs([]string{"--help"}, io.Discard)
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestConfigFilePrecedence(t *testing.T) {
	dir := inTempDir(t)
	content := "rename: none\ncomponents_dir: parts\ncollision: error\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0644))

	cfg, err := ParseArgs(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, RenameNone, cfg.Rename)
	assert.Equal(t, "parts", cfg.ComponentsDir)
	assert.Equal(t, CollisionError, cfg.Collision)
	assert.True(t, cfg.Verbose)

	cfg, err = ParseArgs([]string{"--rename", "ask", "-d", "components"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, RenameAsk, cfg.Rename, "explicit flags win over the file")
	assert.Equal(t, "components", cfg.ComponentsDir)
	assert.Equal(t, CollisionError, cfg.Collision)
}

func TestExplicitConfigFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rename: all\n"), 0644))

	cfg, err := ParseArgs([]string{"--config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, RenameAll, cfg.Rename)
}

func TestConfigFileInvalidYAML(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("rename: [unclosed\n"), 0644))
	_, err := ParseArgs(nil, io.Discard)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigFileValuesAreValidated(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("collision: merge\n"), 0644))
	_, err := ParseArgs(nil, io.Discard)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
