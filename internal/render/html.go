package render

import (
	"strings"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/layout"
)

// Mode selects the output serialization.
type Mode string

const (
	ModeHTML Mode = "html"
	ModeText Mode = "text"
)

// escapeHTML covers exactly the five entities ATS-safe markup needs. The
// ampersand substitution must run first or the other entities would be
// double-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// styleAttr builds an inline style string from the properties actually set on
// the element. Returns "" (and the caller omits the attribute) when none are.
func styleAttr(s canvas.Style) string {
	var props []string
	if s.FontSize != "" {
		props = append(props, "font-size: "+s.FontSize)
	}
	if s.FontWeight != "" {
		props = append(props, "font-weight: "+s.FontWeight)
	}
	if s.FontFamily != "" {
		props = append(props, "font-family: "+s.FontFamily)
	}
	if s.Color != "" {
		props = append(props, "color: "+s.Color)
	}
	if s.TextAlign != "" {
		props = append(props, "text-align: "+s.TextAlign)
	}
	if s.LineHeight != "" {
		props = append(props, "line-height: "+s.LineHeight)
	}
	return strings.Join(props, "; ")
}

// elementTag picks the HTML tag for an element: an explicit semantic hint
// wins, then the ATS field, then a plain paragraph.
func elementTag(el canvas.Element) string {
	if el.SemanticTag != "" {
		return el.SemanticTag
	}
	switch el.ATSField {
	case canvas.FieldName:
		return "h1"
	case canvas.FieldLocation:
		return "address"
	default:
		return "p"
	}
}

// HTML serializes the linearized tree into semantic, ATS-parseable markup.
// Output is deterministic: the same tree always yields the same bytes.
func HTML(tree *layout.Tree) string {
	var b strings.Builder
	b.WriteString(`<div class="resume">` + "\n")

	if len(tree.Header) > 0 {
		b.WriteString("<header>\n")
		for _, h := range tree.Header {
			writeElementHTML(&b, h.Element)
		}
		b.WriteString("</header>\n")
	}

	for _, sec := range tree.Sections {
		writeSectionHTML(&b, sec, false)
	}

	b.WriteString("</div>\n")
	return b.String()
}

func writeElementHTML(b *strings.Builder, el canvas.Element) {
	tag := elementTag(el)
	b.WriteString("<" + tag)
	if style := styleAttr(el.Style); style != "" {
		b.WriteString(` style="` + escapeHTML(style) + `"`)
	}
	if el.ATSField != "" {
		b.WriteString(` data-field="` + escapeHTML(string(el.ATSField)) + `"`)
	}
	b.WriteString(">")
	b.WriteString(escapeHTML(el.Content))
	b.WriteString("</" + tag + ">\n")
}

// writeSectionHTML emits one section. asEntry marks child sections of a
// list-sections parent, which render as entries rather than nested sections.
func writeSectionHTML(b *strings.Builder, node *layout.SectionNode, asEntry bool) {
	childrenAsEntries := node.Section.ContentType == canvas.ContentListSections

	if asEntry {
		b.WriteString(`<div class="entry">` + "\n")
		if node.Section.Title != "" {
			b.WriteString("<h3>" + escapeHTML(node.Section.Title) + "</h3>\n")
		}
	} else {
		b.WriteString("<section>\n")
		if node.Section.Title != "" {
			b.WriteString("<h2>" + escapeHTML(node.Section.Title) + "</h2>\n")
		}
	}

	for _, child := range node.Children {
		switch c := child.(type) {
		case layout.TextNode:
			if c.Element != nil {
				writeElementHTML(b, *c.Element)
			} else {
				b.WriteString("<p>" + escapeHTML(c.Text) + "</p>\n")
			}
		case layout.ListNode:
			b.WriteString("<ul>\n")
			for _, item := range c.Items {
				b.WriteString("<li>" + escapeHTML(stripBulletPrefix(item.Text)) + "</li>\n")
			}
			b.WriteString("</ul>\n")
		case layout.EntryNode:
			writeEntryHTML(b, c)
		case *layout.SectionNode:
			writeSectionHTML(b, c, childrenAsEntries)
		}
	}

	if asEntry {
		b.WriteString("</div>\n")
	} else {
		b.WriteString("</section>\n")
	}
}

func writeEntryHTML(b *strings.Builder, entry layout.EntryNode) {
	b.WriteString(`<div class="entry">` + "\n")
	if entry.Title != "" {
		b.WriteString("<h3>" + escapeHTML(entry.Title) + "</h3>\n")
	}
	if entry.Subtitle != "" {
		b.WriteString(`<p class="subtitle">` + escapeHTML(entry.Subtitle) + "</p>\n")
	}
	if len(entry.Bullets) > 0 {
		b.WriteString("<ul>\n")
		for _, bullet := range entry.Bullets {
			b.WriteString("<li>" + escapeHTML(stripBulletPrefix(bullet)) + "</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>\n")
}
