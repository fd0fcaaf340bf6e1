package layout

import "resumecanvas/internal/canvas"

// Node is one typed node of the linearized document tree. The renderer and
// the scorer both walk the same tree.
type Node interface {
	node()
}

// HeaderNode is a top-level element rendered before any section.
type HeaderNode struct {
	Element canvas.Element `json:"element"`
}

// TextNode is a paragraph leaf. Element is nil when the paragraph came from a
// filled-content block rather than a canvas element.
type TextNode struct {
	Text    string          `json:"text"`
	Element *canvas.Element `json:"element,omitempty"`
}

// ListItem is a single bullet. Element is nil for filled-content items.
type ListItem struct {
	Text    string          `json:"text"`
	Element *canvas.Element `json:"element,omitempty"`
}

// ListNode is a flat bullet list.
type ListNode struct {
	Items []ListItem `json:"items"`
}

// EntryNode is a structured entry (role, degree, project) produced by the
// fill engine.
type EntryNode struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// SectionNode is a section and its children in reading order. Child sections
// appear as nested SectionNodes; under a list-sections parent the renderer
// treats them as entries.
type SectionNode struct {
	Section  canvas.Section `json:"section"`
	Children []Node         `json:"children"`
}

func (HeaderNode) node()   {}
func (TextNode) node()     {}
func (ListNode) node()     {}
func (EntryNode) node()    {}
func (*SectionNode) node() {}

// Tree is the ordered, hierarchical result of linearization.
type Tree struct {
	Header   []HeaderNode   `json:"header"`
	Sections []*SectionNode `json:"sections"`
}

// IsEmpty reports whether the tree holds no content at all.
func (t *Tree) IsEmpty() bool {
	return t == nil || (len(t.Header) == 0 && len(t.Sections) == 0)
}

// Walk visits every node of the tree in reading order, recursing into
// sections depth-first.
func (t *Tree) Walk(visit func(Node)) {
	if t == nil {
		return
	}
	for _, h := range t.Header {
		visit(h)
	}
	for _, s := range t.Sections {
		walkSection(s, visit)
	}
}

func walkSection(s *SectionNode, visit func(Node)) {
	visit(s)
	for _, child := range s.Children {
		if nested, ok := child.(*SectionNode); ok {
			walkSection(nested, visit)
			continue
		}
		visit(child)
	}
}
