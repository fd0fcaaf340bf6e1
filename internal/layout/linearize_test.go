package layout

import (
	"testing"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/errors"
)

func textOf(n Node) string {
	switch node := n.(type) {
	case HeaderNode:
		return node.Element.Content
	case TextNode:
		return node.Text
	default:
		return ""
	}
}

func TestLinearizeReadingOrder(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "bottom", Content: "bottom", X: 0, Y: 200},
			{ID: "right", Content: "right", X: 300, Y: 10},
			{ID: "left", Content: "left", X: 0, Y: 0},
			{ID: "middle", Content: "middle", X: 0, Y: 100},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}

	want := []string{"left", "right", "middle", "bottom"}
	if len(tree.Header) != len(want) {
		t.Fatalf("header length = %d, want %d", len(tree.Header), len(want))
	}
	for i, w := range want {
		if got := tree.Header[i].Element.Content; got != w {
			t.Errorf("header[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestLinearizeLineEps(t *testing.T) {
	// With the default tolerance these two share a line, so the right-hand
	// element with the smaller y still sorts second. A tight tolerance
	// splits them by y.
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "a", Content: "a", X: 200, Y: 0},
			{ID: "b", Content: "b", X: 0, Y: 15},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	if got := tree.Header[0].Element.Content; got != "b" {
		t.Errorf("default eps first = %q, want %q", got, "b")
	}

	tree, err = Linearize(doc, Options{LineEps: 5})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	if got := tree.Header[0].Element.Content; got != "a" {
		t.Errorf("tight eps first = %q, want %q", got, "a")
	}
}

func TestLinearizeNesting(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "name", Content: "Ada Lovelace", Y: 0},
			{ID: "role", Content: "Engineer", ParentSection: "exp-1", Y: 110},
			{ID: "skill", Content: "Go", ParentSection: "skills", Y: 210},
		},
		Sections: []canvas.Section{
			{ID: "skills", Title: "Skills", Y: 200},
			{ID: "exp", Title: "Experience", Y: 100, ContentType: canvas.ContentListSections},
			{ID: "exp-1", Title: "Initech", ParentSection: "exp", Y: 105},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}

	if len(tree.Header) != 1 || tree.Header[0].Element.ID != "name" {
		t.Fatalf("header = %+v, want the single unparented element", tree.Header)
	}
	if len(tree.Sections) != 2 {
		t.Fatalf("top sections = %d, want 2", len(tree.Sections))
	}
	if got := tree.Sections[0].Section.ID; got != "exp" {
		t.Errorf("first section = %q, want %q", got, "exp")
	}

	exp := tree.Sections[0]
	if len(exp.Children) != 1 {
		t.Fatalf("exp children = %d, want 1", len(exp.Children))
	}
	entry, ok := exp.Children[0].(*SectionNode)
	if !ok {
		t.Fatalf("exp child type = %T, want *SectionNode", exp.Children[0])
	}
	if entry.Section.ID != "exp-1" {
		t.Errorf("nested section = %q, want %q", entry.Section.ID, "exp-1")
	}
	if len(entry.Children) != 1 || textOf(entry.Children[0]) != "Engineer" {
		t.Errorf("nested children = %+v, want the role element", entry.Children)
	}
}

func TestLinearizeDanglingParent(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "orphan", Content: "orphan", ParentSection: "missing"},
		},
		Sections: []canvas.Section{
			{ID: "stray", Title: "Stray", ParentSection: "also-missing"},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	if len(tree.Header) != 1 {
		t.Errorf("header = %d elements, want the orphan promoted to top level", len(tree.Header))
	}
	if len(tree.Sections) != 1 {
		t.Errorf("sections = %d, want the stray promoted to top level", len(tree.Sections))
	}
}

func TestLinearizeCycle(t *testing.T) {
	doc := &canvas.Document{
		Sections: []canvas.Section{
			{ID: "a", ParentSection: "b"},
			{ID: "b", ParentSection: "a"},
		},
	}

	_, err := Linearize(doc, Options{})
	if err == nil {
		t.Fatal("expected cycle error")
	}
	if !errors.IsType(err, errors.ErrorTypeModel) {
		t.Errorf("error type = %v, want model error", err)
	}
}

func TestLinearizeSelfParent(t *testing.T) {
	doc := &canvas.Document{
		Sections: []canvas.Section{{ID: "a", ParentSection: "a"}},
	}

	if _, err := Linearize(doc, Options{}); err == nil {
		t.Fatal("expected cycle error for self-referencing section")
	}
}

func TestLinearizeInvalidDocument(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{{ID: "dup"}, {ID: "dup"}},
	}

	if _, err := Linearize(doc, Options{}); err == nil {
		t.Fatal("expected validation error for duplicate ids")
	}
}

func TestLinearizeFilledContentPriority(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "raw", Content: "raw child", ParentSection: "exp"},
		},
		Sections: []canvas.Section{
			{
				ID:    "exp",
				Title: "Experience",
				FilledContent: []canvas.FilledBlock{
					{Type: canvas.BlockEntry, Title: "Engineer", Subtitle: "Initech", Bullets: []string{"shipped"}},
					{Type: canvas.BlockList, Items: []string{"one", "two"}},
					{Type: canvas.BlockText, Text: "closing note"},
				},
			},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}

	children := tree.Sections[0].Children
	if len(children) != 3 {
		t.Fatalf("children = %d, want 3 filled blocks (raw child suppressed)", len(children))
	}

	entry, ok := children[0].(EntryNode)
	if !ok || entry.Title != "Engineer" || len(entry.Bullets) != 1 {
		t.Errorf("children[0] = %+v, want entry node", children[0])
	}
	list, ok := children[1].(ListNode)
	if !ok || len(list.Items) != 2 {
		t.Errorf("children[1] = %+v, want list with 2 items", children[1])
	}
	text, ok := children[2].(TextNode)
	if !ok || text.Text != "closing note" {
		t.Errorf("children[2] = %+v, want text node", children[2])
	}
}

func TestLinearizeListItems(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "s2", Content: "SQL", ParentSection: "skills", Y: 50},
			{ID: "s1", Content: "Go", ParentSection: "skills", Y: 0},
		},
		Sections: []canvas.Section{
			{ID: "skills", Title: "Skills", ContentType: canvas.ContentListItems},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}

	children := tree.Sections[0].Children
	if len(children) != 1 {
		t.Fatalf("children = %d, want a single list node", len(children))
	}
	list, ok := children[0].(ListNode)
	if !ok {
		t.Fatalf("child type = %T, want ListNode", children[0])
	}
	if len(list.Items) != 2 || list.Items[0].Text != "Go" || list.Items[1].Text != "SQL" {
		t.Errorf("items = %+v, want [Go SQL] in reading order", list.Items)
	}
}

func TestLinearizeListSectionsElementFallback(t *testing.T) {
	// A list-sections parent with no child sections falls back to rendering
	// its raw child elements as text.
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "e1", Content: "loose", ParentSection: "exp"},
		},
		Sections: []canvas.Section{
			{ID: "exp", Title: "Experience", ContentType: canvas.ContentListSections},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}

	children := tree.Sections[0].Children
	if len(children) != 1 || textOf(children[0]) != "loose" {
		t.Errorf("children = %+v, want the loose element as text", children)
	}
}

func TestTreeWalk(t *testing.T) {
	doc := &canvas.Document{
		Elements: []canvas.Element{
			{ID: "h", Content: "header"},
			{ID: "c", Content: "child", ParentSection: "inner"},
		},
		Sections: []canvas.Section{
			{ID: "outer", Title: "Outer"},
			{ID: "inner", Title: "Inner", ParentSection: "outer"},
		},
	}

	tree, err := Linearize(doc, Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}

	var kinds []string
	tree.Walk(func(n Node) {
		switch n.(type) {
		case HeaderNode:
			kinds = append(kinds, "header")
		case *SectionNode:
			kinds = append(kinds, "section")
		case TextNode:
			kinds = append(kinds, "text")
		}
	})

	want := []string{"header", "section", "section", "text"}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

func TestTreeIsEmpty(t *testing.T) {
	var nilTree *Tree
	if !nilTree.IsEmpty() {
		t.Error("nil tree should be empty")
	}
	if !(&Tree{}).IsEmpty() {
		t.Error("zero tree should be empty")
	}
	if (&Tree{Header: []HeaderNode{{}}}).IsEmpty() {
		t.Error("tree with a header is not empty")
	}
}
