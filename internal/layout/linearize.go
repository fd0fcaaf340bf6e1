package layout

import (
	"fmt"
	"slices"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/errors"
)

// Options tunes linearization. The zero value uses the defaults.
type Options struct {
	// LineEps is the same-line tolerance passed to the reading-order
	// comparison. Zero means canvas.DefaultLineEps.
	LineEps float64
}

func (o Options) lineEps() float64 {
	if o.LineEps > 0 {
		return o.LineEps
	}
	return canvas.DefaultLineEps
}

// Linearize converts the flat element/section collections into an ordered
// tree matching how a human (and an ATS text extractor) would read the page:
// top-to-bottom, left-to-right, respecting nesting.
//
// A parentSection reference that resolves to no known section degrades to
// top-level. A cycle in the section parent graph is a model error; it never
// recurses infinitely.
func Linearize(doc *canvas.Document, opts Options) (*Tree, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	sectionByID := make(map[string]*canvas.Section, len(doc.Sections))
	for i := range doc.Sections {
		sectionByID[doc.Sections[i].ID] = &doc.Sections[i]
	}

	if err := detectCycles(doc.Sections, sectionByID); err != nil {
		return nil, err
	}

	eps := opts.lineEps()

	// Partition into top-level and child sets. A dangling parent reference
	// counts as top-level.
	var topElements []canvas.Element
	childElements := make(map[string][]canvas.Element)
	for _, el := range doc.Elements {
		if el.ParentSection == "" || sectionByID[el.ParentSection] == nil {
			topElements = append(topElements, el)
		} else {
			childElements[el.ParentSection] = append(childElements[el.ParentSection], el)
		}
	}

	var topSections []canvas.Section
	childSections := make(map[string][]canvas.Section)
	for _, sec := range doc.Sections {
		if sec.ParentSection == "" || sectionByID[sec.ParentSection] == nil {
			topSections = append(topSections, sec)
		} else {
			childSections[sec.ParentSection] = append(childSections[sec.ParentSection], sec)
		}
	}

	sortElements(topElements, eps)
	sortSections(topSections, eps)

	tree := &Tree{}
	for _, el := range topElements {
		tree.Header = append(tree.Header, HeaderNode{Element: el})
	}

	visiting := make(map[string]bool)
	for i := range topSections {
		node, err := buildSection(&topSections[i], childElements, childSections, eps, visiting)
		if err != nil {
			return nil, err
		}
		tree.Sections = append(tree.Sections, node)
	}

	return tree, nil
}

// buildSection assembles one section node, recursing into child sections
// pre-order. The visiting set guards the current path; a repeat id fails
// closed instead of recursing forever.
func buildSection(sec *canvas.Section, childElements map[string][]canvas.Element,
	childSections map[string][]canvas.Section, eps float64, visiting map[string]bool) (*SectionNode, error) {

	if visiting[sec.ID] {
		return nil, errors.NewModelError(errors.ErrCodeParentCycle,
			fmt.Sprintf("Section %q appears twice on its own parent path", sec.ID), nil)
	}
	visiting[sec.ID] = true
	defer delete(visiting, sec.ID)

	node := &SectionNode{Section: *sec}

	// Filled content takes rendering priority over raw child elements.
	if len(sec.FilledContent) > 0 {
		for _, block := range sec.FilledContent {
			node.Children = append(node.Children, blockNode(block))
		}
		return node, nil
	}

	elements := slices.Clone(childElements[sec.ID])
	sortElements(elements, eps)
	sections := slices.Clone(childSections[sec.ID])
	sortSections(sections, eps)

	switch sec.ContentType {
	case canvas.ContentListSections:
		// Children render as entries; pure child elements are a fallback
		// when there are no child sections at all.
		if len(sections) == 0 {
			for i := range elements {
				node.Children = append(node.Children, TextNode{Text: elements[i].Content, Element: &elements[i]})
			}
			return node, nil
		}
		for i := range sections {
			child, err := buildSection(&sections[i], childElements, childSections, eps, visiting)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}

	case canvas.ContentListItems:
		if len(elements) > 0 {
			list := ListNode{}
			for i := range elements {
				list.Items = append(list.Items, ListItem{Text: elements[i].Content, Element: &elements[i]})
			}
			node.Children = append(node.Children, list)
		}
		// Child sections under a list-items parent are unusual but still
		// recursed for completeness.
		for i := range sections {
			child, err := buildSection(&sections[i], childElements, childSections, eps, visiting)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}

	default: // canvas.ContentText and unspecified
		for i := range elements {
			node.Children = append(node.Children, TextNode{Text: elements[i].Content, Element: &elements[i]})
		}
		for i := range sections {
			child, err := buildSection(&sections[i], childElements, childSections, eps, visiting)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}

	return node, nil
}

// blockNode maps a filled-content block onto its node type. The switch is
// exhaustive over the block variants; an unknown type degrades to text.
func blockNode(block canvas.FilledBlock) Node {
	switch block.Type {
	case canvas.BlockEntry:
		return EntryNode{Title: block.Title, Subtitle: block.Subtitle, Bullets: block.Bullets}
	case canvas.BlockList:
		items := make([]ListItem, 0, len(block.Items))
		for _, it := range block.Items {
			items = append(items, ListItem{Text: it})
		}
		return ListNode{Items: items}
	case canvas.BlockText:
		return TextNode{Text: block.Text}
	default:
		return TextNode{Text: block.Text}
	}
}

// detectCycles walks every section's parent chain before traversal so a
// malformed model is reported instead of looping.
func detectCycles(sections []canvas.Section, byID map[string]*canvas.Section) error {
	for _, sec := range sections {
		seen := map[string]bool{sec.ID: true}
		current := sec.ParentSection
		for current != "" {
			parent := byID[current]
			if parent == nil {
				break // dangling reference, degrades to top-level
			}
			if seen[parent.ID] {
				return errors.NewModelError(errors.ErrCodeParentCycle,
					fmt.Sprintf("Cycle in section parent graph involving %q", parent.ID), nil)
			}
			seen[parent.ID] = true
			current = parent.ParentSection
		}
	}
	return nil
}

// sortElements applies the reading-order comparison in a single stable sort.
func sortElements(els []canvas.Element, eps float64) {
	slices.SortStableFunc(els, func(a, b canvas.Element) int {
		return canvas.CompareReadingOrder(a.Bounds(), b.Bounds(), eps)
	})
}

func sortSections(secs []canvas.Section, eps float64) {
	slices.SortStableFunc(secs, func(a, b canvas.Section) int {
		return canvas.CompareReadingOrder(a.Bounds(), b.Bounds(), eps)
	})
}
