// ABOUTME: Markdown to HTML rendering for chat message bodies using goldmark
// ABOUTME: Every link opens in a new browsing context without referrer or opener

package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	linkTarget = []byte("_blank")
	linkRel    = []byte("noopener noreferrer")
)

// externalLinks marks every link node so the HTML renderer emits target and rel.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindLink, ast.KindAutoLink:
			n.SetAttributeString("target", linkTarget)
			n.SetAttributeString("rel", linkRel)
		}
		return ast.WalkContinue, nil
	})
}

// Renderer converts message content to HTML. Raw HTML in the input is not
// passed through.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a Renderer with linkify and external-link handling.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(externalLinks{}, 100)),
		),
	)
	return &Renderer{md: md}
}

// HTML auto-links content and renders it.
func (r *Renderer) HTML(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(AutoLink(content)), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

var defaultRenderer = NewRenderer()

// Markdown renders content with the package default Renderer.
func Markdown(content string) (string, error) {
	return defaultRenderer.HTML(content)
}
