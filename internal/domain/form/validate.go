package form

import (
	"strings"

	"github.com/garyjia/invoice-portal/internal/domain/entity"
)

// Values are the free-text inputs of the form as currently typed
type Values struct {
	XMLContent    string
	UUID          string
	PurchaseOrder string
	GoodsReceipt  string
}

// Result is the outcome of a full-form validation pass
type Result struct {
	Valid  bool
	Errors []*FieldError
}

// Error returns the error recorded for field, or nil
func (r *Result) Error(field Field) *FieldError {
	for _, fe := range r.Errors {
		if fe.Field == field {
			return fe
		}
	}
	return nil
}

func (r *Result) add(fe *FieldError) {
	r.Errors = append(r.Errors, fe)
	r.Valid = false
}

// Checker holds the limits and messages every check renders with
type Checker struct {
	maxFileSize int64
	messages    *Messages
}

// NewChecker creates a Checker. A non-positive maxFileSize means DefaultMaxFileSize.
func NewChecker(maxFileSize int64, messages *Messages) *Checker {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if messages == nil {
		messages = NewMessages("en")
	}
	return &Checker{maxFileSize: maxFileSize, messages: messages}
}

// MaxFileSize returns the upload limit in bytes
func (c *Checker) MaxFileSize() int64 {
	return c.maxFileSize
}

// Messages returns the message catalog
func (c *Checker) Messages() *Messages {
	return c.messages
}

// CheckFile validates a file offered to slot. A nil file is not an error.
func (c *Checker) CheckFile(slot Slot, file *entity.FileHandle) *FieldError {
	if file == nil {
		return nil
	}
	field := SlotField(slot)

	if !HasExtension(file.Name, slot.Extension()) {
		return &FieldError{Field: field, Kind: ErrInvalidFileExtension, Message: c.messages.InvalidExtension(slot)}
	}
	if file.Size > c.maxFileSize {
		return &FieldError{Field: field, Kind: ErrFileTooLarge, Message: c.messages.FileTooLarge(c.maxFileSize)}
	}
	return nil
}

// CheckUUIDField is the check run while typing: an empty field is never flagged.
func (c *Checker) CheckUUIDField(value string) *FieldError {
	value = strings.TrimSpace(value)
	if value == "" || ValidUUID(value) {
		return nil
	}
	return &FieldError{Field: FieldUUID, Kind: ErrInvalidFormat, Message: c.messages.UUIDExample()}
}

// Validate runs every check that applies to the current method and sub-mode,
// plus the two reference numbers. It never stops at the first failure.
func (c *Checker) Validate(state *State, values Values) Result {
	result := Result{Valid: true}

	switch state.Method {
	case MethodXML:
		if state.XMLInputType == XMLInputFile {
			if state.Files.XML == nil {
				result.add(&FieldError{Field: FieldXMLFile, Kind: ErrMissingRequiredField, Message: c.messages.MissingFile(SlotXML)})
			}
		} else if strings.TrimSpace(values.XMLContent) == "" {
			result.add(&FieldError{Field: FieldXMLContent, Kind: ErrMissingRequiredField, Message: c.messages.MissingXMLContent()})
		}
	case MethodUUID:
		uuid := strings.TrimSpace(values.UUID)
		if uuid == "" {
			result.add(&FieldError{Field: FieldUUID, Kind: ErrMissingRequiredField, Message: c.messages.MissingUUID()})
		} else if !ValidUUID(uuid) {
			result.add(&FieldError{Field: FieldUUID, Kind: ErrInvalidFormat, Message: c.messages.InvalidUUID()})
		}
	case MethodPDF:
		if state.Files.PDF == nil {
			result.add(&FieldError{Field: FieldPDFFile, Kind: ErrMissingRequiredField, Message: c.messages.MissingFile(SlotPDF)})
		}
	}

	if strings.TrimSpace(values.PurchaseOrder) == "" {
		result.add(&FieldError{Field: FieldPurchaseOrder, Kind: ErrMissingRequiredField, Message: c.messages.MissingPurchaseOrder()})
	}
	if strings.TrimSpace(values.GoodsReceipt) == "" {
		result.add(&FieldError{Field: FieldGoodsReceipt, Kind: ErrMissingRequiredField, Message: c.messages.MissingGoodsReceipt()})
	}

	return result
}

// BuildPayload assembles the submission for a state that passed Validate.
// Only the field matching the method and sub-mode is populated.
func BuildPayload(state *State, values Values) *entity.SubmissionPayload {
	payload := &entity.SubmissionPayload{
		Method:              state.Method.String(),
		PurchaseOrderNumber: strings.TrimSpace(values.PurchaseOrder),
		GoodsReceiptNumber:  strings.TrimSpace(values.GoodsReceipt),
	}

	switch state.Method {
	case MethodXML:
		if state.XMLInputType == XMLInputFile {
			payload.XMLFile = state.Files.XML
		} else {
			payload.XMLContent = strings.TrimSpace(values.XMLContent)
		}
	case MethodUUID:
		payload.UUID = strings.TrimSpace(values.UUID)
	case MethodPDF:
		payload.PDFFile = state.Files.PDF
	}

	return payload
}
