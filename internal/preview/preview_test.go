package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/fsplit/model"
)

func TestUnifiedDiff(t *testing.T) {
	out, err := UnifiedDiff("lib/page.dart", "a\nb\nc\n", "a\nc\n")
	require.NoError(t, err)
	assert.Contains(t, out, "--- a/lib/page.dart")
	assert.Contains(t, out, "+++ b/lib/page.dart")
	assert.Contains(t, out, "-b\n")

	out, err = UnifiedDiff("lib/page.dart", "same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender(t *testing.T) {
	components := []model.ComponentFile{{ClassName: "Card", FileName: "card.dart", Content: "import 'x';\n\nclass Card {}"}}
	out, err := Render("page.dart", "components", "class A {}\nclass Card {}\n", "import 'components/card.dart';\nclass A {}\n", components)
	require.NoError(t, err)
	assert.Contains(t, out, "would create components/card.dart (Card, 3 lines)")
	assert.Contains(t, out, "+import 'components/card.dart';")
	assert.Contains(t, out, "-class Card {}")

	out, err = Render("page.dart", "components", "x\n", "x\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "main file unchanged\n", out)
}
