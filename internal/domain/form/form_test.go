package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/invoice-portal/internal/domain/entity"
)

func TestValidUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"uppercase hex", "12345678-1234-1234-1234-123456789ABC", true},
		{"lowercase hex", "abcdef01-2345-6789-abcd-ef0123456789", true},
		{"last segment too short", "12345678-1234-1234-1234-12345678", false},
		{"non-hex characters", "ZZZZZZZZ-1234-1234-1234-123456789012", false},
		{"missing hyphens", "123456781234123412341234567890ab", false},
		{"surrounding braces", "{12345678-1234-1234-1234-123456789ABC}", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidUUID(tt.input))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1000000, "976.56 KB"},
		{10 * 1024 * 1024, "10 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
		{2048 * 1024 * 1024 * 1024, "2048 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFileSize(tt.bytes))
		})
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("invoice.xml", ".xml"))
	assert.True(t, HasExtension("INVOICE.XML", ".xml"))
	assert.True(t, HasExtension("archive.tar.pdf", ".pdf"))
	assert.False(t, HasExtension("invoice.txt", ".xml"))
	assert.False(t, HasExtension("xml", ".xml"))
	assert.False(t, HasExtension("invoice.xml.bak", ".xml"))
}

func TestState_Reset(t *testing.T) {
	s := NewState()
	s.Method = MethodPDF
	s.XMLInputType = XMLInputPaste
	s.Files.Set(SlotXML, &entity.FileHandle{Name: "a.xml"})
	s.Files.Set(SlotPDF, &entity.FileHandle{Name: "a.pdf"})
	s.AlternativesShown = true

	s.Reset()

	assert.Equal(t, MethodXML, s.Method)
	assert.Equal(t, XMLInputFile, s.XMLInputType)
	assert.Nil(t, s.Files.Get(SlotXML))
	assert.Nil(t, s.Files.Get(SlotPDF))
	assert.False(t, s.AlternativesShown)
}

func TestEnums_IsValid(t *testing.T) {
	for _, m := range Methods {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, Method("fax").IsValid())
	assert.True(t, XMLInputPaste.IsValid())
	assert.False(t, XMLInputType("").IsValid())
	assert.True(t, SlotPDF.IsValid())
	assert.False(t, Slot("zip").IsValid())
	assert.Equal(t, ".pdf", SlotPDF.Extension())
}

func TestChecker_CheckFile(t *testing.T) {
	c := NewChecker(0, NewMessages("en"))

	t.Run("absent file is ignored", func(t *testing.T) {
		assert.Nil(t, c.CheckFile(SlotXML, nil))
	})

	t.Run("wrong extension", func(t *testing.T) {
		fe := c.CheckFile(SlotXML, &entity.FileHandle{Name: "invoice.txt", Size: 100})
		require.NotNil(t, fe)
		assert.Equal(t, FieldXMLFile, fe.Field)
		assert.True(t, errors.Is(fe, ErrInvalidFileExtension))
		assert.Equal(t, "Please select a valid XML file.", fe.Message)
	})

	t.Run("too large", func(t *testing.T) {
		fe := c.CheckFile(SlotPDF, &entity.FileHandle{Name: "big.pdf", Size: 11 * 1024 * 1024})
		require.NotNil(t, fe)
		assert.Equal(t, FieldPDFFile, fe.Field)
		assert.ErrorIs(t, fe, ErrFileTooLarge)
		assert.Contains(t, fe.Message, "10 MB")
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		assert.Nil(t, c.CheckFile(SlotPDF, &entity.FileHandle{Name: "edge.PDF", Size: DefaultMaxFileSize}))
	})

	t.Run("extension is checked before size", func(t *testing.T) {
		fe := c.CheckFile(SlotPDF, &entity.FileHandle{Name: "big.doc", Size: 50 * 1024 * 1024})
		require.NotNil(t, fe)
		assert.ErrorIs(t, fe, ErrInvalidFileExtension)
	})
}

func TestChecker_CheckUUIDField(t *testing.T) {
	c := NewChecker(0, nil)

	assert.Nil(t, c.CheckUUIDField(""))
	assert.Nil(t, c.CheckUUIDField("   "))
	assert.Nil(t, c.CheckUUIDField(" 12345678-1234-1234-1234-123456789abc "))

	fe := c.CheckUUIDField("1234")
	require.NotNil(t, fe)
	assert.ErrorIs(t, fe, ErrInvalidFormat)
	assert.Contains(t, fe.Message, "12345678-1234-1234-1234-123456789ABC")
}

func TestChecker_Validate(t *testing.T) {
	c := NewChecker(0, nil)
	xmlFile := &entity.FileHandle{Name: "cfdi.xml", Size: 2048}
	pdfFile := &entity.FileHandle{Name: "factura.pdf", Size: 2 * 1024 * 1024}
	refs := Values{PurchaseOrder: "PO1", GoodsReceipt: "GR1"}

	tests := []struct {
		name        string
		state       State
		values      Values
		valid       bool
		errorFields []Field
	}{
		{
			name:        "xml file missing",
			state:       State{Method: MethodXML, XMLInputType: XMLInputFile},
			values:      refs,
			errorFields: []Field{FieldXMLFile},
		},
		{
			name:   "xml file present",
			state:  State{Method: MethodXML, XMLInputType: XMLInputFile, Files: UploadedFiles{XML: xmlFile}},
			values: refs,
			valid:  true,
		},
		{
			name:        "pasted xml blank",
			state:       State{Method: MethodXML, XMLInputType: XMLInputPaste},
			values:      Values{XMLContent: " \n\t", PurchaseOrder: "PO1", GoodsReceipt: "GR1"},
			errorFields: []Field{FieldXMLContent},
		},
		{
			name:   "pasted xml ignores a missing file",
			state:  State{Method: MethodXML, XMLInputType: XMLInputPaste},
			values: Values{XMLContent: "<cfdi/>", PurchaseOrder: "PO1", GoodsReceipt: "GR1"},
			valid:  true,
		},
		{
			name:        "uuid and goods receipt missing together",
			state:       State{Method: MethodUUID, XMLInputType: XMLInputFile},
			values:      Values{PurchaseOrder: "PO1"},
			errorFields: []Field{FieldUUID, FieldGoodsReceipt},
		},
		{
			name:        "uuid malformed",
			state:       State{Method: MethodUUID, XMLInputType: XMLInputFile},
			values:      Values{UUID: "nope", PurchaseOrder: "PO1", GoodsReceipt: "GR1"},
			errorFields: []Field{FieldUUID},
		},
		{
			name:        "pdf missing and every reference missing",
			state:       State{Method: MethodPDF, XMLInputType: XMLInputFile},
			values:      Values{PurchaseOrder: "  ", GoodsReceipt: ""},
			errorFields: []Field{FieldPDFFile, FieldPurchaseOrder, FieldGoodsReceipt},
		},
		{
			name:   "pdf present",
			state:  State{Method: MethodPDF, XMLInputType: XMLInputFile, Files: UploadedFiles{PDF: pdfFile}},
			values: refs,
			valid:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.state
			result := c.Validate(&state, tt.values)

			assert.Equal(t, tt.valid, result.Valid)
			var got []Field
			for _, fe := range result.Errors {
				got = append(got, fe.Field)
			}
			if diff := cmp.Diff(tt.errorFields, got); diff != "" {
				t.Errorf("error fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChecker_ValidateUUIDMessages(t *testing.T) {
	c := NewChecker(0, nil)
	state := &State{Method: MethodUUID, XMLInputType: XMLInputFile}

	result := c.Validate(state, Values{PurchaseOrder: "PO1"})
	fe := result.Error(FieldUUID)
	require.NotNil(t, fe)
	assert.ErrorIs(t, fe, ErrMissingRequiredField)
	assert.Equal(t, "Please enter the invoice UUID.", fe.Message)

	result = c.Validate(state, Values{UUID: "bad", PurchaseOrder: "PO1", GoodsReceipt: "GR1"})
	fe = result.Error(FieldUUID)
	require.NotNil(t, fe)
	assert.ErrorIs(t, fe, ErrInvalidFormat)
	assert.Equal(t, "Invalid UUID format.", fe.Message)
	assert.Nil(t, result.Error(FieldGoodsReceipt))
}

func TestBuildPayload(t *testing.T) {
	pdfFile := &entity.FileHandle{Name: "factura.pdf", Size: 2 * 1024 * 1024}
	xmlFile := &entity.FileHandle{Name: "cfdi.xml", Size: 900}
	values := Values{
		XMLContent:    "  <cfdi/>  ",
		UUID:          " 12345678-1234-1234-1234-123456789ABC ",
		PurchaseOrder: " PO-77 ",
		GoodsReceipt:  "GR-5",
	}

	tests := []struct {
		name     string
		state    State
		expected *entity.SubmissionPayload
	}{
		{
			name:  "xml file",
			state: State{Method: MethodXML, XMLInputType: XMLInputFile, Files: UploadedFiles{XML: xmlFile, PDF: pdfFile}},
			expected: &entity.SubmissionPayload{
				Method: "xml", PurchaseOrderNumber: "PO-77", GoodsReceiptNumber: "GR-5", XMLFile: xmlFile,
			},
		},
		{
			name:  "xml paste",
			state: State{Method: MethodXML, XMLInputType: XMLInputPaste, Files: UploadedFiles{XML: xmlFile}},
			expected: &entity.SubmissionPayload{
				Method: "xml", PurchaseOrderNumber: "PO-77", GoodsReceiptNumber: "GR-5", XMLContent: "<cfdi/>",
			},
		},
		{
			name:  "uuid",
			state: State{Method: MethodUUID, XMLInputType: XMLInputFile},
			expected: &entity.SubmissionPayload{
				Method: "uuid", PurchaseOrderNumber: "PO-77", GoodsReceiptNumber: "GR-5", UUID: "12345678-1234-1234-1234-123456789ABC",
			},
		},
		{
			name:  "pdf",
			state: State{Method: MethodPDF, XMLInputType: XMLInputFile, Files: UploadedFiles{XML: xmlFile, PDF: pdfFile}},
			expected: &entity.SubmissionPayload{
				Method: "pdf", PurchaseOrderNumber: "PO-77", GoodsReceiptNumber: "GR-5", PDFFile: pdfFile,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.state
			if diff := cmp.Diff(tt.expected, BuildPayload(&state, values)); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMessages_Spanish(t *testing.T) {
	m := NewMessages("es-MX")
	assert.Equal(t, "es", m.Language())
	assert.Equal(t, "Por favor, carga un archivo PDF.", m.MissingFile(SlotPDF))
	assert.Equal(t, "El archivo es demasiado grande. Tamaño máximo: 10 MB", m.FileTooLarge(DefaultMaxFileSize))
	assert.Equal(t, "Seleccione o arrastre el archivo XML", m.Placeholder(SlotXML))
}

func TestMessages_FallbackToEnglish(t *testing.T) {
	for _, lang := range []string{"", "en", "fr", "not a tag"} {
		m := NewMessages(lang)
		assert.Equal(t, "en", m.Language(), lang)
		assert.Equal(t, "Please upload an XML file.", m.MissingFile(SlotXML))
		assert.Equal(t, "✓ factura.pdf", m.AcceptedFile("factura.pdf"))
	}
}
