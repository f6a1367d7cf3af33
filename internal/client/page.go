package client

import "sync"

// Element is a page node whose visible text can be replaced.
type Element interface {
	SetText(text string)
}

// Document locates elements by identifier.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// TextElement is an in-memory Element.
type TextElement struct {
	mu   sync.Mutex
	text string
	sets int
}

// SetText replaces the element text.
func (e *TextElement) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	e.sets++
}

// Text returns the current element text.
func (e *TextElement) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Modified reports whether SetText has ever been called.
func (e *TextElement) Modified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sets > 0
}

// Page is an in-memory Document holding TextElements.
type Page struct {
	elements map[string]*TextElement
}

// NewPage creates a page with one empty element per id.
func NewPage(ids ...string) *Page {
	p := &Page{elements: make(map[string]*TextElement, len(ids))}
	for _, id := range ids {
		p.elements[id] = &TextElement{}
	}
	return p
}

// Element returns the TextElement with id, or nil.
func (p *Page) Element(id string) *TextElement {
	return p.elements[id]
}

// ElementByID implements Document.
func (p *Page) ElementByID(id string) (Element, bool) {
	e, ok := p.elements[id]
	if !ok {
		return nil, false
	}
	return e, true
}
