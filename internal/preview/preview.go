// Package preview renders what a split would do without touching the disk.
package preview

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/fsplit/model"
)

// UnifiedDiff returns a unified diff between the old and new main-file text.
// It is empty when the texts are equal.
func UnifiedDiff(path, before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}
	return out, nil
}

// Render describes a planned split: the component files that would be
// written and the diff of the main file.
func Render(mainPath, componentsDir, before, after string, components []model.ComponentFile) (string, error) {
	var b strings.Builder
	for _, c := range components {
		lines := strings.Count(c.Content, "\n") + 1
		fmt.Fprintf(&b, "would create %s/%s (%s, %d lines)\n", componentsDir, c.FileName, c.ClassName, lines)
	}

	diff, err := UnifiedDiff(mainPath, before, after)
	if err != nil {
		return "", err
	}
	if diff == "" {
		b.WriteString("main file unchanged\n")
		return b.String(), nil
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(diff)
	return b.String(), nil
}
