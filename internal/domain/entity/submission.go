package entity

// FileHandle is the metadata of a file chosen in the browser.
// Only the name and byte size are ever inspected; content stays with the client.
type FileHandle struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// SubmissionPayload is the normalized result of a valid form.
// Exactly one of XMLFile, XMLContent, UUID or PDFFile is set, depending on the
// identification method and XML sub-mode.
type SubmissionPayload struct {
	Method              string      `json:"method"`
	PurchaseOrderNumber string      `json:"purchaseOrderNumber"`
	GoodsReceiptNumber  string      `json:"goodsReceiptNumber"`
	XMLFile             *FileHandle `json:"xmlFile,omitempty"`
	XMLContent          string      `json:"xmlContent,omitempty"`
	UUID                string      `json:"uuid,omitempty"`
	PDFFile             *FileHandle `json:"pdfFile,omitempty"`
}
