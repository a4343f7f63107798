package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// loadMarkdown parses the markdown AST and collects the text content of every
// node, one line per block, so headings and code fences lose their syntax.
func (l *Loader) loadMarkdown(ctx context.Context, path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file failed: %w", err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(gtext.NewReader(raw))

	var sb strings.Builder
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch node := n.(type) {
			case *ast.Text:
				sb.Write(node.Segment.Value(raw))
			case *ast.FencedCodeBlock:
				for i := 0; i < node.Lines().Len(); i++ {
					line := node.Lines().At(i)
					sb.Write(line.Value(raw))
				}
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			sb.WriteString("\n")
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown ast failed: %w", err)
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return nil, fmt.Errorf("markdown file has no text: %s", path)
	}
	return []Document{{Content: content, Source: path}}, nil
}
