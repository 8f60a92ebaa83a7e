package parser

import (
	"regexp"

	"github.com/sokinpui/fsplit/model"
)

// Result holds everything the extractor found in a source text.
type Result struct {
	Imports []model.ImportStatement
	Classes []model.ClassMatch
}

var (
	// importRegex matches a single-line import with either quote style.
	importRegex = regexp.MustCompile(`(?m)^import\s+['"](?P<path>[^'"]+)['"];?[ \t]*$`)

	// classRegex matches a top-level widget class. The body is non-greedy and
	// ends at the first line holding only "}" at column 0, so a nested
	// declaration whose closing brace sits at column 0 ends the span early.
	// That is a known limitation of matching without a grammar.
	classRegex = regexp.MustCompile(
		`(?m)class\s+(?P<private>_?)(?P<name>\w+)\s+extends\s+\w+\s*\{` +
			`[\s\S]*?` +
			`^\}$`)

	// schemeRegex recognises URIs such as package:, dart: or http:.
	schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
)

// Extract scans text for import statements and class declarations in
// source order. The text is not modified.
func Extract(text string) Result {
	return Result{
		Imports: ExtractImports(text),
		Classes: ExtractClasses(text),
	}
}

// ExtractImports returns every single-line import statement in text.
func ExtractImports(text string) []model.ImportStatement {
	matches := importRegex.FindAllStringSubmatch(text, -1)
	pathIdx := importRegex.SubexpIndex("path")

	imports := make([]model.ImportStatement, 0, len(matches))
	for _, match := range matches {
		path := match[pathIdx]
		imports = append(imports, model.ImportStatement{
			Raw:     match[0],
			Path:    path,
			Package: IsPackageImport(path),
		})
	}
	return imports
}

// ExtractClasses returns every top-level class declaration in text.
func ExtractClasses(text string) []model.ClassMatch {
	matches := classRegex.FindAllStringSubmatchIndex(text, -1)
	privateIdx := classRegex.SubexpIndex("private")
	nameIdx := classRegex.SubexpIndex("name")

	classes := make([]model.ClassMatch, 0, len(matches))
	for _, loc := range matches {
		classes = append(classes, model.ClassMatch{
			Span:    text[loc[0]:loc[1]],
			Name:    text[loc[2*nameIdx]:loc[2*nameIdx+1]],
			Private: loc[2*privateIdx+1] > loc[2*privateIdx],
			Offset:  loc[0],
		})
	}
	return classes
}

// IsPackageImport reports whether an import path names a library rather
// than a sibling file.
func IsPackageImport(path string) bool {
	return schemeRegex.MatchString(path)
}

// LastImportEnd returns the offset just past the line terminator of the last
// import statement in text, or -1 when text has no import.
func LastImportEnd(text string) int {
	locs := importRegex.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return -1
	}
	end := locs[len(locs)-1][1]
	if end < len(text) && text[end] == '\n' {
		end++
	}
	return end
}
