package canvas

// ATSField tags an element with the contact-style field it represents so the
// renderer and scorer can give it special treatment.
type ATSField string

const (
	FieldName     ATSField = "name"
	FieldEmail    ATSField = "email"
	FieldPhone    ATSField = "phone"
	FieldLocation ATSField = "location"
	FieldLinkedIn ATSField = "linkedin"
	FieldWebsite  ATSField = "website"
	FieldContact  ATSField = "contact"
)

// ElementType discriminates text content from embedded media.
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
)

// Style holds the optional visual properties of an element. Empty values mean
// "renderer default" and are omitted from emitted inline styles.
type Style struct {
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	Color      string `json:"color,omitempty"`
	TextAlign  string `json:"textAlign,omitempty"`
	LineHeight string `json:"lineHeight,omitempty"`
}

// IsEmpty reports whether no style property is set.
func (s Style) IsEmpty() bool {
	return s == Style{}
}

// Element is a leaf content node positioned on the canvas.
type Element struct {
	ID            string      `json:"id"`
	Type          ElementType `json:"type,omitempty"`
	Content       string      `json:"content"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Width         float64     `json:"width"`
	Height        float64     `json:"height"`
	Style         Style       `json:"style,omitempty"`
	ParentSection string      `json:"parentSection,omitempty"`
	ATSField      ATSField    `json:"atsField,omitempty"`
	SemanticTag   string      `json:"semanticTag,omitempty"`
}

// Bounds returns the element's canvas rectangle.
func (e *Element) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// IsImage reports whether the element embeds media rather than text.
func (e *Element) IsImage() bool {
	return e.Type == ElementImage
}

// ContentType determines how a section's children are rendered when no
// filled content is present.
type ContentType string

const (
	ContentText         ContentType = "text"
	ContentListItems    ContentType = "list-items"
	ContentListSections ContentType = "list-sections"
)

// Direction is a layout hint consumed by the renderer's spacing logic. It does
// not affect linearization order.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// BlockType discriminates the filled-content block variants.
type BlockType string

const (
	BlockEntry BlockType = "entry"
	BlockList  BlockType = "list"
	BlockText  BlockType = "text"
)

// FilledBlock is a pre-structured content block produced by the fill engine.
// Exactly one variant's fields are populated, selected by Type.
type FilledBlock struct {
	Type BlockType `json:"type"`

	// entry
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`

	// list
	Items []string `json:"items,omitempty"`

	// text
	Text string `json:"text,omitempty"`
}

// Section is a positioned container with a content-type discriminator. A
// section may itself be the child of another section; the parent graph must be
// acyclic and is checked before traversal.
type Section struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	ContentType   ContentType   `json:"contentType"`
	ParentSection string        `json:"parentSection,omitempty"`
	Direction     Direction     `json:"direction,omitempty"`
	FilledContent []FilledBlock `json:"filledContent,omitempty"`

	// Annotations set by the fill engine; never expanded into child elements.
	Filled    bool `json:"filled,omitempty"`
	ItemCount int  `json:"itemCount,omitempty"`
}

// Bounds returns the section's canvas rectangle.
func (s *Section) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Document is a complete canvas model: flat element and section collections
// addressed by id. Parent/child relationships are id references, never
// pointers.
type Document struct {
	Elements []Element `json:"elements"`
	Sections []Section `json:"sections"`
}

// Experience is one role used by the summary fallback during fill.
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company,omitempty"`
	Years   string `json:"years,omitempty"`
}

// UserData is the personal-info record substituted into template placeholders.
type UserData struct {
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Location   string       `json:"location,omitempty"`
	LinkedIn   string       `json:"linkedin,omitempty"`
	Website    string       `json:"website,omitempty"`
	Title      string       `json:"title,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
}

// PersonalInfo returns the fixed placeholder mapping used by the fill engine.
// Keys are the lowercase field names accepted inside {curly} tokens.
func (u UserData) PersonalInfo() map[string]string {
	return map[string]string{
		"name":     u.Name,
		"email":    u.Email,
		"phone":    u.Phone,
		"location": u.Location,
		"linkedin": u.LinkedIn,
		"website":  u.Website,
	}
}
