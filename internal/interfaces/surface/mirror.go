// Package surface provides an in-memory copy of the page that implements the
// controller's rendering and input ports. Every render call is recorded as an
// Op so the browser bridge can replay it on the real DOM.
package surface

import (
	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/entity"
)

// OpKind names a render operation
type OpKind string

const (
	OpAddClass    OpKind = "addClass"
	OpRemoveClass OpKind = "removeClass"
	OpSetText     OpKind = "setText"
	OpSetStyle    OpKind = "setStyle"
	OpClearValue  OpKind = "clearValue"
	OpOpenPicker  OpKind = "openPicker"
	OpAcknowledge OpKind = "acknowledge"
)

// Op is one render operation for the browser
type Op struct {
	Kind   OpKind `json:"op"`
	Target string `json:"target,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

type element struct {
	classes map[string]bool
	text    string
	style   map[string]string
	value   string
	files   []entity.FileHandle
}

// Mirror is not safe for concurrent use.
type Mirror struct {
	elements map[string]*element
	ops      []Op
	notices  []string
}

// NewMirror creates an empty mirror; elements are created on first use
func NewMirror() *Mirror {
	return &Mirror{elements: make(map[string]*element)}
}

func (m *Mirror) el(id string) *element {
	e, ok := m.elements[id]
	if !ok {
		e = &element{classes: make(map[string]bool), style: make(map[string]string)}
		m.elements[id] = e
	}
	return e
}

func (m *Mirror) record(op Op) {
	m.ops = append(m.ops, op)
}

// AddClass implements port.Renderer
func (m *Mirror) AddClass(id, class string) {
	m.el(id).classes[class] = true
	m.record(Op{Kind: OpAddClass, Target: id, Name: class})
}

// RemoveClass implements port.Renderer
func (m *Mirror) RemoveClass(id, class string) {
	delete(m.el(id).classes, class)
	m.record(Op{Kind: OpRemoveClass, Target: id, Name: class})
}

// SetText implements port.Renderer
func (m *Mirror) SetText(id, text string) {
	m.el(id).text = text
	m.record(Op{Kind: OpSetText, Target: id, Value: text})
}

// SetStyle implements port.Renderer
func (m *Mirror) SetStyle(id, property, value string) {
	e := m.el(id)
	if value == "" {
		delete(e.style, property)
	} else {
		e.style[property] = value
	}
	m.record(Op{Kind: OpSetStyle, Target: id, Name: property, Value: value})
}

// ClearValue implements port.Renderer
func (m *Mirror) ClearValue(id string) {
	e := m.el(id)
	e.value = ""
	e.files = nil
	m.record(Op{Kind: OpClearValue, Target: id})
}

// OpenPicker implements port.Renderer
func (m *Mirror) OpenPicker(id string) {
	m.record(Op{Kind: OpOpenPicker, Target: id})
}

// Acknowledge implements port.Renderer
func (m *Mirror) Acknowledge(message string) {
	m.notices = append(m.notices, message)
	m.record(Op{Kind: OpAcknowledge, Value: message})
}

// Len returns the number of elements the mirror tracks
func (m *Mirror) Len() int {
	return len(m.elements)
}

// Value implements port.InputSurface
func (m *Mirror) Value(id string) string {
	if e, ok := m.elements[id]; ok {
		return e.value
	}
	return ""
}

// SetValue records text typed by the user. It is not a render operation.
func (m *Mirror) SetValue(id, value string) {
	m.el(id).value = value
}

// SetFiles records the files selected in a picker by the user
func (m *Mirror) SetFiles(id string, files []entity.FileHandle) {
	m.el(id).files = append([]entity.FileHandle(nil), files...)
}

// Files returns the current picker selection
func (m *Mirror) Files(id string) []entity.FileHandle {
	if e, ok := m.elements[id]; ok {
		return e.files
	}
	return nil
}

// HasClass reports whether the element currently carries class
func (m *Mirror) HasClass(id, class string) bool {
	if e, ok := m.elements[id]; ok {
		return e.classes[class]
	}
	return false
}

// Text returns the element's visible text
func (m *Mirror) Text(id string) string {
	if e, ok := m.elements[id]; ok {
		return e.text
	}
	return ""
}

// Style returns an inline style property, empty when unset
func (m *Mirror) Style(id, property string) string {
	if e, ok := m.elements[id]; ok {
		return e.style[property]
	}
	return ""
}

// Notices returns every acknowledgment shown so far
func (m *Mirror) Notices() []string {
	return m.notices
}

// Drain returns the operations recorded since the last call and forgets them
func (m *Mirror) Drain() []Op {
	ops := m.ops
	m.ops = nil
	if ops == nil {
		ops = []Op{}
	}
	return ops
}

var (
	_ port.Renderer     = (*Mirror)(nil)
	_ port.InputSurface = (*Mirror)(nil)
)
