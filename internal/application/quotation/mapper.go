package quotation

import (
	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	if q == nil {
		return nil
	}
	lines := make([]dto.QuotationLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, dto.QuotationLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Length:      l.Length,
			Width:       l.Width,
			Quantity:    l.Quantity,
			Surface:     l.Surface,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		})
	}
	return &dto.QuotationResponse{
		ID:             q.ID,
		Reference:      q.Reference,
		ClientName:     q.ClientName,
		ClientPhone:    q.ClientPhone,
		Type:           q.Type,
		Status:         q.Status,
		Lines:          lines,
		TotalAmount:    q.TotalAmount,
		StockDebitedAt: q.StockDebitedAt,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func toQuotationResponses(list []*entity.Quotation) []dto.QuotationResponse {
	items := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQuotationResponse(q))
	}
	return items
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		Quotation:    *toQuotationResponse(inv.Quotation),
		TotalAmount:  inv.TotalAmount,
		AdvancePaid:  inv.AdvancePaid,
		RemainingDue: inv.RemainingDue,
	}
}
