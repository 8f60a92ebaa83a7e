package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock represents a parsed code block from markdown content.
type CodeBlock struct {
	// Hint is the content of the paragraph immediately preceding the code block.
	Hint string
	// Lang is the first word of the info string (e.g., "dart").
	Lang string
	// Content is the raw text inside the code block.
	Content string
}

// HasFence reports whether content looks like markdown holding a fenced block.
func HasFence(content string) bool {
	return strings.Contains(content, "```")
}

// ExtractCodeBlocks uses a markdown AST to find all fenced code blocks
// and their preceding paragraph, which is treated as a hint.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		if fenced.Info != nil {
			if fields := strings.Fields(string(fenced.Info.Text(source))); len(fields) > 0 {
				block.Lang = strings.ToLower(fields[0])
			}
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		block.Content = content.String()

		if prev := fenced.PreviousSibling(); prev != nil {
			if p, ok := prev.(*ast.Paragraph); ok {
				block.Hint = strings.TrimSpace(string(p.Text(source)))
			}
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}

// ExtractDartBlock picks the Dart source out of pasted markdown. A block
// whose preceding paragraph names fileName wins; otherwise the first block
// tagged dart, then the first untagged block. Blocks in other languages are
// never used.
func ExtractDartBlock(source []byte, fileName string) (string, bool) {
	blocks, err := ExtractCodeBlocks(source)
	if err != nil {
		return "", false
	}

	var tagged, untagged *CodeBlock
	for i := range blocks {
		b := &blocks[i]
		if b.Lang != "dart" && b.Lang != "" {
			continue
		}
		if fileName != "" && strings.Contains(b.Hint, fileName) {
			return b.Content, true
		}
		if b.Lang == "dart" && tagged == nil {
			tagged = b
		}
		if b.Lang == "" && untagged == nil {
			untagged = b
		}
	}

	switch {
	case tagged != nil:
		return tagged.Content, true
	case untagged != nil:
		return untagged.Content, true
	}
	return "", false
}
