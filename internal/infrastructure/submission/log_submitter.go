// Package submission holds the collaborators that receive validated payloads.
package submission

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/entity"
)

// LogSubmitter surfaces each payload to the operator log and accepts it.
// It performs no transport.
type LogSubmitter struct {
	logger *zap.Logger
}

// NewLogSubmitter creates a LogSubmitter
func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

// Submit implements port.Submitter
func (s *LogSubmitter) Submit(ctx context.Context, payload *entity.SubmissionPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("method", payload.Method),
		zap.String("purchase_order", payload.PurchaseOrderNumber),
		zap.String("goods_receipt", payload.GoodsReceiptNumber),
	}
	switch {
	case payload.XMLFile != nil:
		fields = append(fields, zap.String("xml_file", payload.XMLFile.Name), zap.Int64("xml_file_size", payload.XMLFile.Size))
	case payload.XMLContent != "":
		fields = append(fields, zap.Int("xml_content_length", len(payload.XMLContent)))
	case payload.UUID != "":
		fields = append(fields, zap.String("uuid", payload.UUID))
	case payload.PDFFile != nil:
		fields = append(fields, zap.String("pdf_file", payload.PDFFile.Name), zap.Int64("pdf_file_size", payload.PDFFile.Size))
	}

	s.logger.Info("Invoice submission received", fields...)
	return nil
}

var _ port.Submitter = (*LogSubmitter)(nil)
