package splitter

import (
	"regexp"
	"strings"

	"github.com/sokinpui/fsplit/internal/parser"
	"github.com/sokinpui/fsplit/model"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// FileName derives the snake_case file name of a class, e.g.
// "MyWidget" becomes "my_widget.dart".
func FileName(className string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(className, "${1}_${2}")) + ".dart"
}

// ComponentContent joins the adjusted imports, a blank line and the class body.
func ComponentContent(imports []model.ImportStatement, body string) string {
	if len(imports) == 0 {
		return body
	}
	lines := make([]string, len(imports))
	for i, imp := range imports {
		lines[i] = imp.Raw
	}
	return strings.Join(lines, "\n") + "\n\n" + body
}

// Assemble inserts the new import lines after the last existing import of
// working, or at the top when it has none, then normalizes whitespace.
func Assemble(working string, newImports []string) string {
	if len(newImports) > 0 {
		block := strings.Join(newImports, "\n") + "\n\n"
		at := parser.LastImportEnd(working)
		if at < 0 {
			at = 0
		}
		if at > 0 && working[at-1] != '\n' {
			block = "\n" + block
		}
		working = working[:at] + block + working[at:]
	}
	return NormalizeWhitespace(working)
}

// NormalizeWhitespace drops every whitespace-only line and terminates the
// text with exactly one newline.
func NormalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n") + "\n"
}
