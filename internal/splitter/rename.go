package splitter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sokinpui/fsplit/model"
)

// Prompt is the question asked before making a private component public.
func Prompt(c model.ClassMatch) string {
	return fmt.Sprintf("Make private widget %s public?", c.Name)
}

// Rename makes a private component public when choice confirms it. The
// declaration and constructors are rewritten in content and every whole-word
// reference is rewritten in remaining. Both strings come back unchanged for a
// public class or any answer other than a confirmation.
func Rename(c model.ClassMatch, content, remaining string, choice model.Choice) (string, string, bool) {
	if !c.Private || !choice.Confirmed() {
		return content, remaining, false
	}

	old := regexp.QuoteMeta("_" + c.Name)

	content = strings.Replace(content, "class _"+c.Name, "class "+c.Name, 1)

	ctor := regexp.MustCompile(`const\s+` + old + `\s*\(`)
	content = ctor.ReplaceAllLiteralString(content, "const "+c.Name+"(")

	return content, RenameReferences(c, remaining), true
}

// RenameReferences rewrites every whole-word use of the private name of c
// in text to its public name.
func RenameReferences(c model.ClassMatch, text string) string {
	ref := regexp.MustCompile(`\b` + regexp.QuoteMeta("_"+c.Name) + `\b`)
	return ref.ReplaceAllLiteralString(text, c.Name)
}
