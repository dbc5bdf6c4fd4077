package quotation

import (
	"context"

	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio es observable.
type TxRunner interface {
	RunQuotation(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// PDFGenerator renderiza los documentos imprimibles.
type PDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, q *entity.Quotation) ([]byte, error)
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}

// DocumentArchive guarda una copia de los PDF generados (object storage).
type DocumentArchive interface {
	Store(ctx context.Context, key string, data []byte, contentType string) error
}
