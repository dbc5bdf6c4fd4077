package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationLineRequest una línea pedida: producto + dimensiones + cantidad.
type QuotationLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Length    decimal.Decimal `json:"length" validate:"dpositive"`
	Width     decimal.Decimal `json:"width" validate:"dpositive"`
	Quantity  decimal.Decimal `json:"quantity" validate:"dpositive"`
}

// CreateQuotationRequest body para POST /api/quotations.
type CreateQuotationRequest struct {
	ClientName  string                 `json:"client_name" validate:"required,max=200"`
	ClientPhone string                 `json:"client_phone" validate:"required,max=40"`
	Type        string                 `json:"type" validate:"omitempty"`
	Lines       []QuotationLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateQuotationStatusRequest body para PATCH /api/quotations/:id/status.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// InvoiceRequest body de POST /api/quotations/:id/invoice[/pdf]. Acepta "avance" como alias de advance_paid.
type InvoiceRequest struct {
	AdvancePaid *decimal.Decimal `json:"advance_paid"`
	Avance      *decimal.Decimal `json:"avance"`
}

// Advance devuelve el anticipo indicado; sin ninguno de los dos campos es 0.
func (r InvoiceRequest) Advance() decimal.Decimal {
	switch {
	case r.AdvancePaid != nil:
		return *r.AdvancePaid
	case r.Avance != nil:
		return *r.Avance
	}
	return decimal.Zero
}

// QuotationLineResponse línea valorizada.
type QuotationLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Length      decimal.Decimal `json:"length"`
	Width       decimal.Decimal `json:"width"`
	Quantity    decimal.Decimal `json:"quantity"`
	Surface     decimal.Decimal `json:"surface"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID             string                  `json:"id"`
	Reference      string                  `json:"reference"`
	ClientName     string                  `json:"client_name"`
	ClientPhone    string                  `json:"client_phone"`
	Type           string                  `json:"type"`
	Status         string                  `json:"status"`
	Lines          []QuotationLineResponse `json:"lines"`
	TotalAmount    decimal.Decimal         `json:"total_amount"`
	StockDebitedAt *time.Time              `json:"stock_debited_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// QuotationListResponse lista paginada de cotizaciones.
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// InvoiceResponse proyección de factura de una cotización validada.
type InvoiceResponse struct {
	Quotation    QuotationResponse `json:"quotation"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	AdvancePaid  decimal.Decimal   `json:"advance_paid"`
	RemainingDue decimal.Decimal   `json:"remaining_due"`
}
