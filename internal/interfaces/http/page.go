package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/invoice-portal/internal/domain/form"
	"github.com/garyjia/invoice-portal/pkg/utils"
)

//go:embed web/index.html.tmpl web/assets
var webFS embed.FS

// PageConfig holds settings for the form page
type PageConfig struct {
	Title      string
	Language   string
	NoticeHTML string
}

// pageLabels are the static texts of the page
type pageLabels struct {
	Heading       string
	MethodXML     string
	MethodUUID    string
	MethodPDF     string
	MoreOptions   string
	UploadFile    string
	PasteXML      string
	XMLPasteHint  string
	UUIDLabel     string
	PurchaseOrder string
	GoodsReceipt  string
	Submit        string
	Cancel        string
}

var labelsByLanguage = map[string]pageLabels{
	"en": {
		Heading:       "Submit supplier invoice",
		MethodXML:     "XML",
		MethodUUID:    "Invoice UUID",
		MethodPDF:     "PDF",
		MoreOptions:   "Other options",
		UploadFile:    "Upload file",
		PasteXML:      "Paste XML",
		XMLPasteHint:  "Paste the XML content here",
		UUIDLabel:     "Invoice UUID",
		PurchaseOrder: "Purchase order number",
		GoodsReceipt:  "Goods receipt number",
		Submit:        "Submit",
		Cancel:        "Cancel",
	},
	"es": {
		Heading:       "Enviar factura de proveedor",
		MethodXML:     "XML",
		MethodUUID:    "UUID de factura",
		MethodPDF:     "PDF",
		MoreOptions:   "Otras opciones",
		UploadFile:    "Cargar archivo",
		PasteXML:      "Pegar XML",
		XMLPasteHint:  "Pegue aquí el contenido XML",
		UUIDLabel:     "UUID de la factura",
		PurchaseOrder: "Número de orden de compra",
		GoodsReceipt:  "Número de entrada de mercancía",
		Submit:        "Enviar",
		Cancel:        "Cancelar",
	},
}

type pageData struct {
	Lang           string
	Title          string
	Notice         template.HTML
	Labels         pageLabels
	XMLPlaceholder string
	PDFPlaceholder string
}

// pageRenderer serves the form page, rendered once at startup
type pageRenderer struct {
	body []byte
}

func newPageRenderer(config PageConfig) (*pageRenderer, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html.tmpl")
	if err != nil {
		return nil, err
	}

	messages := form.NewMessages(config.Language)
	lang := messages.Language()
	title := config.Title
	if title == "" {
		title = labelsByLanguage[lang].Heading
	}

	data := pageData{
		Lang:           lang,
		Title:          title,
		Notice:         template.HTML(utils.SanitizeNoticeHTML(config.NoticeHTML)), // #nosec G203 -- sanitized
		Labels:         labelsByLanguage[lang],
		XMLPlaceholder: messages.Placeholder(form.SlotXML),
		PDFPlaceholder: messages.Placeholder(form.SlotPDF),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return &pageRenderer{body: buf.Bytes()}, nil
}

// ServePage handles GET /
func (p *pageRenderer) ServePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", p.body)
}

func assetsFS() (http.FileSystem, error) {
	sub, err := fs.Sub(webFS, "web/assets")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}
