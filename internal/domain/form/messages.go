package form

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgInvalidXMLFile     = "Please select a valid XML file."
	msgInvalidPDFFile     = "Please select a valid PDF file."
	msgFileTooLarge       = "The file is too large. Maximum size: %s"
	msgUUIDExample        = "Invalid UUID format. Example: 12345678-1234-1234-1234-123456789ABC"
	msgMissingXMLFile     = "Please upload an XML file."
	msgMissingXMLContent  = "Please paste the XML content."
	msgMissingUUID        = "Please enter the invoice UUID."
	msgInvalidUUID        = "Invalid UUID format."
	msgMissingPDFFile     = "Please upload a PDF file."
	msgMissingPurchase    = "Please enter the purchase order number."
	msgMissingGoodsRecpt  = "Please enter the goods receipt number."
	msgSubmitted          = "The form was submitted successfully."
	msgSubmitFailed       = "The form could not be submitted. Please try again."
	msgXMLPlaceholder     = "Select or drag the XML file"
	msgPDFPlaceholder     = "Select or drag the PDF file"
	msgAcceptedFilePrefix = "✓ %s"
)

var spanish = map[string]string{
	msgInvalidXMLFile:    "Por favor, selecciona un archivo XML válido.",
	msgInvalidPDFFile:    "Por favor, selecciona un archivo PDF válido.",
	msgFileTooLarge:      "El archivo es demasiado grande. Tamaño máximo: %s",
	msgUUIDExample:       "Formato UUID inválido. Ejemplo: 12345678-1234-1234-1234-123456789ABC",
	msgMissingXMLFile:    "Por favor, carga un archivo XML.",
	msgMissingXMLContent: "Por favor, pega el contenido XML.",
	msgMissingUUID:       "Por favor, ingresa el UUID de la factura.",
	msgInvalidUUID:       "Formato UUID inválido.",
	msgMissingPDFFile:    "Por favor, carga un archivo PDF.",
	msgMissingPurchase:   "Por favor, ingresa el número de orden de compra.",
	msgMissingGoodsRecpt: "Por favor, ingresa el número de entrada de mercancía.",
	msgSubmitted:         "Formulario enviado correctamente.",
	msgSubmitFailed:      "No se pudo enviar el formulario. Inténtalo de nuevo.",
	msgXMLPlaceholder:    "Seleccione o arrastre el archivo XML",
	msgPDFPlaceholder:    "Seleccione o arrastre el archivo PDF",
}

func init() {
	for key, text := range spanish {
		_ = message.SetString(language.Spanish, key, text)
	}
}

// Messages renders user-facing texts in one language.
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// NewMessages returns the catalog for lang ("en", "es", ...). Unknown or
// unsupported tags fall back to English.
func NewMessages(lang string) *Messages {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	base, _ := tag.Base()
	if base.String() == "es" {
		tag = language.Spanish
	} else {
		tag = language.English
	}
	return &Messages{tag: tag, printer: message.NewPrinter(tag)}
}

// Language returns the resolved language tag
func (m *Messages) Language() string {
	return m.tag.String()
}

func (m *Messages) text(key string, args ...interface{}) string {
	return m.printer.Sprintf(key, args...)
}

// InvalidExtension is shown when a file has the wrong suffix for slot
func (m *Messages) InvalidExtension(slot Slot) string {
	if slot == SlotPDF {
		return m.text(msgInvalidPDFFile)
	}
	return m.text(msgInvalidXMLFile)
}

// FileTooLarge names the maximum size in human-readable units
func (m *Messages) FileTooLarge(maxSize int64) string {
	return m.text(msgFileTooLarge, FormatFileSize(maxSize))
}

// UUIDExample is the live-typing UUID error
func (m *Messages) UUIDExample() string { return m.text(msgUUIDExample) }

// MissingFile is shown on submit when slot has no accepted file
func (m *Messages) MissingFile(slot Slot) string {
	if slot == SlotPDF {
		return m.text(msgMissingPDFFile)
	}
	return m.text(msgMissingXMLFile)
}

func (m *Messages) MissingXMLContent() string { return m.text(msgMissingXMLContent) }
func (m *Messages) MissingUUID() string { return m.text(msgMissingUUID) }
func (m *Messages) InvalidUUID() string { return m.text(msgInvalidUUID) }
func (m *Messages) MissingPurchaseOrder() string { return m.text(msgMissingPurchase) }
func (m *Messages) MissingGoodsReceipt() string { return m.text(msgMissingGoodsRecpt) }
func (m *Messages) Submitted() string { return m.text(msgSubmitted) }
func (m *Messages) SubmitFailed() string { return m.text(msgSubmitFailed) }

// Placeholder is the drop zone label shown while slot has no accepted file
func (m *Messages) Placeholder(slot Slot) string {
	if slot == SlotPDF {
		return m.text(msgPDFPlaceholder)
	}
	return m.text(msgXMLPlaceholder)
}

// AcceptedFile is the drop zone label once name was accepted
func (m *Messages) AcceptedFile(name string) string {
	return m.text(msgAcceptedFilePrefix, name)
}
