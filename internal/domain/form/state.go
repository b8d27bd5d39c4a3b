package form

import "github.com/garyjia/invoice-portal/internal/domain/entity"

// Method is the invoice identification method chosen by the supplier
type Method string

const (
	MethodXML  Method = "xml"
	MethodUUID Method = "uuid"
	MethodPDF  Method = "pdf"
)

// Methods lists every method in selector order
var Methods = []Method{MethodXML, MethodUUID, MethodPDF}

// IsValid returns true if the method is one of the known methods
func (m Method) IsValid() bool {
	switch m {
	case MethodXML, MethodUUID, MethodPDF:
		return true
	}
	return false
}

// String returns the string representation of the method
func (m Method) String() string {
	return string(m)
}

// XMLInputType selects how XML is provided when Method is MethodXML
type XMLInputType string

const (
	XMLInputFile  XMLInputType = "file"
	XMLInputPaste XMLInputType = "paste"
)

// IsValid returns true if the input type is file or paste
func (t XMLInputType) IsValid() bool {
	return t == XMLInputFile || t == XMLInputPaste
}

// String returns the string representation of the input type
func (t XMLInputType) String() string {
	return string(t)
}

// Slot is a named file upload target
type Slot string

const (
	SlotXML Slot = "xml"
	SlotPDF Slot = "pdf"
)

// Slots lists both upload slots
var Slots = []Slot{SlotXML, SlotPDF}

// IsValid returns true if the slot is xml or pdf
func (s Slot) IsValid() bool {
	return s == SlotXML || s == SlotPDF
}

// String returns the string representation of the slot
func (s Slot) String() string {
	return string(s)
}

// Extension returns the only file extension the slot accepts
func (s Slot) Extension() string {
	return "." + string(s)
}

// UploadedFiles holds the accepted file for each slot
type UploadedFiles struct {
	XML *entity.FileHandle
	PDF *entity.FileHandle
}

// Get returns the accepted file for slot, or nil
func (u *UploadedFiles) Get(slot Slot) *entity.FileHandle {
	switch slot {
	case SlotXML:
		return u.XML
	case SlotPDF:
		return u.PDF
	}
	return nil
}

// Set stores file as the accepted file for slot
func (u *UploadedFiles) Set(slot Slot, file *entity.FileHandle) {
	switch slot {
	case SlotXML:
		u.XML = file
	case SlotPDF:
		u.PDF = file
	}
}

// State is the whole mutable state of one form
type State struct {
	Method            Method
	XMLInputType      XMLInputType
	Files             UploadedFiles
	AlternativesShown bool
}

// NewState returns the default state: XML method, file sub-mode, nothing uploaded
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the defaults and drops any accepted files
func (s *State) Reset() {
	s.Method = MethodXML
	s.XMLInputType = XMLInputFile
	s.Files = UploadedFiles{}
	s.AlternativesShown = false
}
