package controller

import "github.com/garyjia/invoice-portal/internal/domain/form"

// CSS classes and inline styles the controller toggles
const (
	ClassActive   = "active"
	ClassShow     = "show"
	ClassError    = "error"
	ClassDragOver = "dragover"

	StyleBorderColor = "border-color"
	StyleBackground  = "background"

	successBorderColor = "var(--color-success)"
	successBackground  = "#f1f8f4"
)

// Elements maps every logical part of the form to the id of the element that
// renders it. The controller addresses the page only through these ids.
type Elements struct {
	Form         string
	CancelButton string

	MethodButtons map[form.Method]string
	MethodPanels  map[form.Method]string

	XMLFileToggle  string
	XMLPasteToggle string
	XMLFileGroup   string
	XMLPasteGroup  string

	ToggleOptionsButton string
	AlternativeOptions  string

	FileInputs  map[form.Slot]string
	UploadZones map[form.Slot]string
	FileLabels  map[form.Slot]string

	XMLTextarea        string
	UUIDInput          string
	PurchaseOrderInput string
	GoodsReceiptInput  string

	// ErrorSlots hold the message text for each field
	ErrorSlots map[form.Field]string

	// Controls receive the error highlight for each field
	Controls map[form.Field]string
}

// DefaultElements returns the ids used by the bundled page template
func DefaultElements() Elements {
	return Elements{
		Form:         "invoiceForm",
		CancelButton: "cancelBtn",
		MethodButtons: map[form.Method]string{
			form.MethodXML:  "xmlMethodBtn",
			form.MethodUUID: "uuidMethodBtn",
			form.MethodPDF:  "pdfMethodBtn",
		},
		MethodPanels: map[form.Method]string{
			form.MethodXML:  "xmlContent",
			form.MethodUUID: "uuidContent",
			form.MethodPDF:  "pdfContent",
		},
		XMLFileToggle:       "xmlFileToggle",
		XMLPasteToggle:      "xmlPasteToggle",
		XMLFileGroup:        "xmlFileGroup",
		XMLPasteGroup:       "xmlPasteGroup",
		ToggleOptionsButton: "toggleOptionsBtn",
		AlternativeOptions:  "alternativeOptions",
		FileInputs: map[form.Slot]string{
			form.SlotXML: "xmlFileInput",
			form.SlotPDF: "pdfFileInput",
		},
		UploadZones: map[form.Slot]string{
			form.SlotXML: "xmlUploadZone",
			form.SlotPDF: "pdfUploadZone",
		},
		FileLabels: map[form.Slot]string{
			form.SlotXML: "xmlFileText",
			form.SlotPDF: "pdfFileText",
		},
		XMLTextarea:        "xmlTextarea",
		UUIDInput:          "uuidInput",
		PurchaseOrderInput: "purchaseOrderInput",
		GoodsReceiptInput:  "goodsReceiptInput",
		ErrorSlots: map[form.Field]string{
			form.FieldXMLFile:       "xmlFileError",
			form.FieldXMLContent:    "xmlContentError",
			form.FieldUUID:          "uuidError",
			form.FieldPDFFile:       "pdfFileError",
			form.FieldPurchaseOrder: "purchaseOrderError",
			form.FieldGoodsReceipt:  "goodsReceiptError",
		},
		Controls: map[form.Field]string{
			form.FieldXMLFile:       "xmlFileInput",
			form.FieldXMLContent:    "xmlTextarea",
			form.FieldUUID:          "uuidInput",
			form.FieldPDFFile:       "pdfFileInput",
			form.FieldPurchaseOrder: "purchaseOrderInput",
			form.FieldGoodsReceipt:  "goodsReceiptInput",
		},
	}
}

// TextControls returns the ids of the controls whose typed value the page reports
func (e Elements) TextControls() []string {
	return []string{e.XMLTextarea, e.UUIDInput, e.PurchaseOrderInput, e.GoodsReceiptInput}
}

// FilePickers returns the ids of the file inputs
func (e Elements) FilePickers() []string {
	return []string{e.FileInputs[form.SlotXML], e.FileInputs[form.SlotPDF]}
}

// inputControls lists every control whose value is cleared on reset
func (e Elements) inputControls() []string {
	return []string{
		e.FileInputs[form.SlotXML],
		e.XMLTextarea,
		e.UUIDInput,
		e.FileInputs[form.SlotPDF],
		e.PurchaseOrderInput,
		e.GoodsReceiptInput,
	}
}
