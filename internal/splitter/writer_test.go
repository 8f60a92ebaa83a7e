package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/fsplit/model"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"MyWidget", "my_widget.dart"},
		{"Card", "card.dart"},
		{"ProfileCardHeader", "profile_card_header.dart"},
		{"HTTPClient", "httpclient.dart"},
		{"MyHTTPWidget", "my_httpwidget.dart"},
		{"Card2View", "card2view.dart"},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.class))
			assert.Equal(t, FileName(tt.class), FileName(tt.class))
		})
	}
}

func TestComponentContent(t *testing.T) {
	imports := []model.ImportStatement{
		{Raw: "import 'package:a/a.dart';"},
		{Raw: "import '../b.dart';"},
	}
	assert.Equal(t, "import 'package:a/a.dart';\nimport '../b.dart';\n\nclass X {}", ComponentContent(imports, "class X {}"))
	assert.Equal(t, "class X {}", ComponentContent(nil, "class X {}"))
}

func TestAssemble(t *testing.T) {
	t.Run("after last import", func(t *testing.T) {
		got := Assemble("import 'a.dart';\nimport 'b.dart';\n\nclass A {}\n", []string{"import 'components/x.dart';"})
		assert.Equal(t, "import 'a.dart';\nimport 'b.dart';\nimport 'components/x.dart';\nclass A {}\n", got)
	})

	t.Run("no imports goes to the top", func(t *testing.T) {
		got := Assemble("class A {}\n", []string{"import 'components/x.dart';", "import 'components/y.dart';"})
		assert.Equal(t, "import 'components/x.dart';\nimport 'components/y.dart';\nclass A {}\n", got)
	})

	t.Run("last import without newline", func(t *testing.T) {
		got := Assemble("import 'a.dart';", []string{"import 'components/x.dart';"})
		assert.Equal(t, "import 'a.dart';\nimport 'components/x.dart';\n", got)
	})

	t.Run("nothing to insert", func(t *testing.T) {
		assert.Equal(t, "class A {}\n", Assemble("\n\nclass A {}\n\n\n", nil))
	})
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a\n  b\nc\n", NormalizeWhitespace("a\n\n  \n  b\n\t\nc\n\n\n"))
	assert.Equal(t, "\n", NormalizeWhitespace(""))
	assert.Equal(t, "x\n", NormalizeWhitespace("x"))
}

func TestAdjustImports(t *testing.T) {
	imports := []model.ImportStatement{
		{Raw: "import 'package:flutter/material.dart';", Path: "package:flutter/material.dart", Package: true},
		{Raw: "import 'utils.dart';", Path: "utils.dart"},
		{Raw: `import "theme/colors.dart";`, Path: "theme/colors.dart"},
		{Raw: "import 'dart:math';", Path: "dart:math", Package: true},
	}

	got := AdjustImports(imports, 1)
	assert.Equal(t, imports[0], got[0])
	assert.Equal(t, "import '../utils.dart';", got[1].Raw)
	assert.Equal(t, "../utils.dart", got[1].Path)
	assert.Equal(t, `import "../theme/colors.dart";`, got[2].Raw)
	assert.Equal(t, imports[3], got[3])

	assert.Equal(t, "import 'utils.dart';", imports[1].Raw, "input is not mutated")
	assert.Equal(t, imports, AdjustImports(imports, 0))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 1, Depth("components"))
	assert.Equal(t, 2, Depth("/widgets/parts/"))
	assert.Equal(t, 1, Depth("./parts"))
	assert.Equal(t, 0, Depth(".."))
}

func TestImportLine(t *testing.T) {
	assert.Equal(t, "import 'components/card.dart';", ImportLine("components", "card.dart"))
	assert.Equal(t, "import 'a/b/card.dart';", ImportLine("/a/b/", "card.dart"))
}
