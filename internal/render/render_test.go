package render

import (
	"strings"
	"testing"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/errors"
	"resumecanvas/internal/layout"
)

func buildTree(t *testing.T, doc *canvas.Document) *layout.Tree {
	t.Helper()
	tree, err := layout.Linearize(doc, layout.Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	return tree
}

func sampleDoc() *canvas.Document {
	return &canvas.Document{
		Elements: []canvas.Element{
			{ID: "name", Content: "Ada Lovelace", ATSField: canvas.FieldName, Y: 0},
			{ID: "role", Content: "Software Engineer <Go>", ParentSection: "exp-1", Y: 110},
		},
		Sections: []canvas.Section{
			{ID: "exp", Title: "Experience", ContentType: canvas.ContentListSections, Y: 100},
			{ID: "exp-1", Title: "Initech", ParentSection: "exp", Y: 105},
		},
	}
}

func TestRenderDispatch(t *testing.T) {
	tree := buildTree(t, sampleDoc())

	html, err := Render(tree, ModeHTML)
	if err != nil {
		t.Fatalf("html mode: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Error("html output missing h1")
	}

	text, err := Render(tree, ModeText)
	if err != nil {
		t.Fatalf("text mode: %v", err)
	}
	if !strings.Contains(text, "EXPERIENCE") {
		t.Error("text output missing upper-cased section title")
	}

	_, err = Render(tree, Mode("docx"))
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Errorf("error type = %v, want validation error", err)
	}
}

func TestHTMLStructure(t *testing.T) {
	html := HTML(buildTree(t, sampleDoc()))

	for _, want := range []string{
		`<div class="resume">`,
		"<header>",
		`<h1 data-field="name">Ada Lovelace</h1>`,
		"<section>",
		"<h2>Experience</h2>",
		`<div class="entry">`,
		"<h3>Initech</h3>",
		"Software Engineer &lt;Go&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestHTMLEscaping(t *testing.T) {
	tree := buildTree(t, &canvas.Document{
		Elements: []canvas.Element{
			{ID: "e1", Content: `<script>alert("x") & 'y'</script>`},
		},
	})
	html := HTML(tree)

	if strings.Contains(html, "<script>") {
		t.Error("raw markup leaked into output")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(&quot;x&quot;) &amp; &#39;y&#39;&lt;/script&gt;") {
		t.Errorf("escaping incomplete:\n%s", html)
	}
}

func TestHTMLStyleAndTag(t *testing.T) {
	tests := []struct {
		name string
		el   canvas.Element
		want []string
	}{
		{
			name: "semantic tag wins over field",
			el:   canvas.Element{ID: "e", Content: "x", SemanticTag: "h2", ATSField: canvas.FieldName},
			want: []string{"<h2", "</h2>"},
		},
		{
			name: "location renders as address",
			el:   canvas.Element{ID: "e", Content: "London", ATSField: canvas.FieldLocation},
			want: []string{"<address", "</address>"},
		},
		{
			name: "plain paragraph default",
			el:   canvas.Element{ID: "e", Content: "x"},
			want: []string{"<p>x</p>"},
		},
		{
			name: "inline style from set properties only",
			el:   canvas.Element{ID: "e", Content: "x", Style: canvas.Style{FontSize: "12px", Color: "#333"}},
			want: []string{`style="font-size: 12px; color: #333"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, &canvas.Document{Elements: []canvas.Element{tt.el}})
			html := HTML(tree)
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("output missing %q:\n%s", want, html)
				}
			}
		})
	}
}

func TestHTMLDeterministic(t *testing.T) {
	doc := sampleDoc()
	first := HTML(buildTree(t, doc))
	second := HTML(buildTree(t, doc))
	if first != second {
		t.Error("two renders of the same document differ")
	}
}

func TestTextOutput(t *testing.T) {
	tree := buildTree(t, &canvas.Document{
		Elements: []canvas.Element{
			{ID: "name", Content: "Ada Lovelace", Y: 0},
		},
		Sections: []canvas.Section{
			{
				ID:    "exp",
				Title: "Experience",
				Y:     100,
				FilledContent: []canvas.FilledBlock{
					{Type: canvas.BlockEntry, Title: "Engineer", Subtitle: "Initech", Bullets: []string{"- shipped it"}},
					{Type: canvas.BlockList, Items: []string{"• Go", "2. SQL"}},
				},
			},
		},
	})

	text := Text(tree)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	want := []string{
		"Ada Lovelace",
		"",
		"EXPERIENCE",
		strings.Repeat("-", ruleWidth),
		"Engineer",
		"Initech",
		"• shipped it",
		"• Go",
		"• SQL",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestStripBulletPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"• item", "item"},
		{"- item", "item"},
		{"* item", "item"},
		{"12. item", "item"},
		{"  - indented", "indented"},
		{"plain", "plain"},
		{"3.5 ratio", "5 ratio"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripBulletPrefix(tt.in); got != tt.want {
			t.Errorf("stripBulletPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
