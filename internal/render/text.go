package render

import (
	"fmt"
	"strings"

	"resumecanvas/internal/errors"
	"resumecanvas/internal/layout"
)

// bulletGlyph is the single marker text mode emits for every list item,
// regardless of what marker the source content carried.
const bulletGlyph = "• "

// ruleWidth is the width of the rule drawn under section titles.
const ruleWidth = 40

// Render dispatches on the output mode.
func Render(tree *layout.Tree, mode Mode) (string, error) {
	switch mode {
	case ModeHTML:
		return HTML(tree), nil
	case ModeText:
		return Text(tree), nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unknown render mode: %s", mode), nil)
	}
}

// Text serializes the linearized tree as plain text in the same traversal
// order as HTML mode: one leaf per line, section titles upper-cased with a
// rule beneath, bullets normalized to a single glyph.
func Text(tree *layout.Tree) string {
	var b strings.Builder

	for _, h := range tree.Header {
		if h.Element.Content != "" {
			b.WriteString(h.Element.Content + "\n")
		}
	}

	for _, sec := range tree.Sections {
		writeSectionText(&b, sec)
	}

	return b.String()
}

func writeSectionText(b *strings.Builder, node *layout.SectionNode) {
	b.WriteString("\n")
	if node.Section.Title != "" {
		b.WriteString(strings.ToUpper(node.Section.Title) + "\n")
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	}

	for _, child := range node.Children {
		switch c := child.(type) {
		case layout.TextNode:
			if c.Text != "" {
				b.WriteString(c.Text + "\n")
			}
		case layout.ListNode:
			for _, item := range c.Items {
				b.WriteString(bulletGlyph + stripBulletPrefix(item.Text) + "\n")
			}
		case layout.EntryNode:
			if c.Title != "" {
				b.WriteString(c.Title + "\n")
			}
			if c.Subtitle != "" {
				b.WriteString(c.Subtitle + "\n")
			}
			for _, bullet := range c.Bullets {
				b.WriteString(bulletGlyph + stripBulletPrefix(bullet) + "\n")
			}
		case *layout.SectionNode:
			writeSectionText(b, c)
		}
	}
}

// stripBulletPrefix removes a leading bullet marker the fill engine or the
// user may have left in the content, so re-adding the canonical glyph never
// doubles it. Handles "•", "-", "*" and numeral-dot prefixes like "1.".
func stripBulletPrefix(s string) string {
	trimmed := strings.TrimLeft(s, " \t")

	switch {
	case strings.HasPrefix(trimmed, "•"):
		trimmed = strings.TrimPrefix(trimmed, "•")
	case strings.HasPrefix(trimmed, "-"):
		trimmed = strings.TrimPrefix(trimmed, "-")
	case strings.HasPrefix(trimmed, "*"):
		trimmed = strings.TrimPrefix(trimmed, "*")
	default:
		// numeral-dot prefix, e.g. "1." or "12."
		i := 0
		for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
			i++
		}
		if i > 0 && i < len(trimmed) && trimmed[i] == '.' {
			trimmed = trimmed[i+1:]
		}
	}

	return strings.TrimSpace(trimmed)
}
