package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxymarbre/devis-api/pkg/logger"
)

const (
	pdfContentType = "application/pdf"
	archiveTimeout = 15 * time.Second
)

// DocumentUseCase genera los PDF de devis y factura y archiva una copia.
type DocumentUseCase struct {
	quotations *UseCase
	generator  PDFGenerator
	archive    DocumentArchive
	log        *logger.Logger
}

// NewDocumentUseCase construye el caso de uso. archive puede ser nil (sin archivo).
func NewDocumentUseCase(quotations *UseCase, generator PDFGenerator, archive DocumentArchive, log *logger.Logger) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{quotations: quotations, generator: generator, archive: archive, log: log}
}

// QuotationPDF devuelve el PDF del devis y su nombre de archivo.
func (uc *DocumentUseCase) QuotationPDF(ctx context.Context, id string) ([]byte, string, error) {
	q, err := uc.quotations.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateQuotationPDF(ctx, q)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación del devis: %w", err)
	}
	filename := fmt.Sprintf("devis_%s.pdf", q.Reference)
	uc.store(ctx, "devis/"+filename, pdf)
	return pdf, filename, nil
}

// InvoicePDF devuelve el PDF de la factura (solo cotizaciones validadas).
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, id string, advancePaid decimal.Decimal) ([]byte, string, error) {
	inv, err := uc.quotations.projectInvoice(ctx, id, advancePaid)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación de la factura: %w", err)
	}
	filename := fmt.Sprintf("facture_%s.pdf", inv.Quotation.Reference)
	uc.store(ctx, "factures/"+filename, pdf)
	return pdf, filename, nil
}

// store archiva el PDF; los errores se registran y no afectan la respuesta.
func (uc *DocumentUseCase) store(ctx context.Context, key string, data []byte) {
	if uc.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()
	if err := uc.archive.Store(ctx, key, data, pdfContentType); err != nil {
		uc.log.Error().Err(err).Str("key", key).Msg("archivo de PDF fallido")
	}
}
