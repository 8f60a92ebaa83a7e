package splitter

import (
	"strings"

	"github.com/sokinpui/fsplit/model"
)

// Depth counts the directory levels in a slash-separated components path.
func Depth(dir string) int {
	depth := 0
	for _, part := range strings.Split(strings.Trim(dir, "/"), "/") {
		switch part {
		case "", ".":
		case "..":
			depth--
		default:
			depth++
		}
	}
	if depth < 0 {
		return 0
	}
	return depth
}

// AdjustImports rewrites relative imports so they resolve from a directory
// depth levels below the original file. Package imports pass through.
func AdjustImports(imports []model.ImportStatement, depth int) []model.ImportStatement {
	adjusted := make([]model.ImportStatement, len(imports))
	for i, imp := range imports {
		adjusted[i] = AdjustImport(imp, depth)
	}
	return adjusted
}

// AdjustImport prefixes a relative import path with depth "../" steps.
func AdjustImport(imp model.ImportStatement, depth int) model.ImportStatement {
	if imp.Package || depth <= 0 || strings.HasPrefix(imp.Path, "/") {
		return imp
	}

	q := strings.IndexAny(imp.Raw, `'"`)
	if q < 0 {
		return imp
	}
	prefix := strings.Repeat("../", depth)
	return model.ImportStatement{
		Raw:     imp.Raw[:q+1] + prefix + imp.Raw[q+1:],
		Path:    prefix + imp.Path,
		Package: false,
	}
}

// ImportLine is the statement the edited file uses to reach a component.
func ImportLine(dir, fileName string) string {
	return "import '" + strings.Trim(dir, "/") + "/" + fileName + "';"
}
