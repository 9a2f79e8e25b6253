package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractMarkdown parses markdown and returns one segment per block level
// element: headings, paragraphs, list items and blockquote paragraphs.
// Code blocks, HTML blocks and thematic breaks are skipped; link and
// emphasis text is kept without its markup.
func ExtractMarkdown(source string) []string {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var segments []string
	collect(doc, src, &segments)
	return segments
}

// collect walks block nodes, emitting one segment per spoken block.
func collect(node ast.Node, source []byte, segments *[]string) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading, *ast.Paragraph:
			appendSegment(segments, inlineText(n, source))
		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				appendSegment(segments, inlineText(item, source))
			}
		case *ast.Blockquote:
			collect(n, source, segments)
		case *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			// Not spoken.
		default:
			if child.Type() == ast.TypeBlock {
				collect(child, source, segments)
			}
		}
	}
}

func appendSegment(segments *[]string, content string) {
	content = strings.Join(strings.Fields(content), " ")
	if content != "" {
		*segments = append(*segments, content)
	}
}

// inlineText flattens a block node's inline children to plain text. Link
// and emphasis wrappers contribute their text, images their alt text, and
// inline code its literal content.
func inlineText(node ast.Node, source []byte) string {
	var buf strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.CodeSpan:
				for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
					if txt, ok := cc.(*ast.Text); ok {
						buf.Write(txt.Segment.Value(source))
					}
				}
			case *ast.AutoLink:
				buf.Write(t.URL(source))
			default:
				walk(c)
			}
		}
	}
	walk(node)
	return buf.String()
}
