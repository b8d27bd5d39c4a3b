package form

import "errors"

var (
	// ErrMissingRequiredField is returned when a required text is empty or a file is missing
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidFormat is returned when a value does not match its expected pattern
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidFileExtension is returned when a file has the wrong suffix for its slot
	ErrInvalidFileExtension = errors.New("invalid file extension")

	// ErrFileTooLarge is returned when a file exceeds the upload limit
	ErrFileTooLarge = errors.New("file too large")
)

// Field is a logical form field that can carry a validation error
type Field string

const (
	FieldXMLFile       Field = "xml_file"
	FieldXMLContent    Field = "xml_content"
	FieldUUID          Field = "uuid"
	FieldPDFFile       Field = "pdf_file"
	FieldPurchaseOrder Field = "purchase_order"
	FieldGoodsReceipt  Field = "goods_receipt"
)

// Fields lists every field in display order
var Fields = []Field{
	FieldXMLFile,
	FieldXMLContent,
	FieldUUID,
	FieldPDFFile,
	FieldPurchaseOrder,
	FieldGoodsReceipt,
}

// SlotField maps an upload slot to its error field
func SlotField(slot Slot) Field {
	if slot == SlotPDF {
		return FieldPDFFile
	}
	return FieldXMLFile
}

// FieldError is a validation failure recorded against a single field
type FieldError struct {
	Field   Field
	Kind    error
	Message string
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// Unwrap exposes the error kind so callers can use errors.Is
func (e *FieldError) Unwrap() error {
	return e.Kind
}
