package model

// ImportStatement is a single-line import declaration found in a Dart source.
type ImportStatement struct {
	Raw     string // The full line, e.g., "import 'utils.dart';"
	Path    string // The quoted target, e.g., "utils.dart"
	Package bool   // True for URIs with a scheme such as package: or dart:
}

// ClassMatch is a top-level class declaration found by the extractor.
type ClassMatch struct {
	// Span is the declaration text from the class keyword through the
	// closing brace line.
	Span string
	// Name is the class name without the leading underscore.
	Name    string
	Private bool
	// Offset is the byte offset of Span in the original text.
	Offset int
}

// Identifier returns the class name as declared in source.
func (c ClassMatch) Identifier() string {
	if c.Private {
		return "_" + c.Name
	}
	return c.Name
}

// ComponentFile is one generated file holding a relocated class.
type ComponentFile struct {
	ClassName string
	FileName  string
	Content   string
}

// Choice is the answer given to a rename prompt.
type Choice string

const (
	ChoiceConfirm Choice = "Yes"
	ChoiceDecline Choice = "No"
)

// Confirmed reports whether the choice approves the rename. Anything other
// than ChoiceConfirm, including an empty dismissal, counts as a decline.
func (c Choice) Confirmed() bool {
	return c == ChoiceConfirm
}

// Summary holds the results of an operation for display.
type Summary struct {
	MainWidget string
	Created    []string
	Modified   []string
	Renamed    []string
	Failed     []string
	Message    string
}
