package quotation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/internal/domain"
)

func TestQuotationPDF_ArchivaCopia(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	archive := &fakeArchive{}
	docs := quotation.NewDocumentUseCase(uc, fakeGenerator{}, archive, nil)

	pdf, filename, err := docs.QuotationPDF(context.Background(), q.ID)
	require.NoError(t, err)

	assert.Equal(t, "devis_20250307001.pdf", filename)
	assert.Contains(t, string(pdf), "%PDF")
	assert.Equal(t, []string{"devis/devis_20250307001.pdf"}, archive.keys)
}

func TestQuotationPDF_FalloDeArchivoNoEsFatal(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	docs := quotation.NewDocumentUseCase(uc, fakeGenerator{}, &fakeArchive{err: errors.New("minio caído")}, nil)

	pdf, _, err := docs.QuotationPDF(context.Background(), q.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestQuotationPDF_SinArchivo(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	docs := quotation.NewDocumentUseCase(uc, fakeGenerator{}, nil, nil)

	_, _, err := docs.QuotationPDF(context.Background(), q.ID)
	require.NoError(t, err)

	_, _, err = docs.QuotationPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoicePDF(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "2", "3", "1"))
	archive := &fakeArchive{}
	docs := quotation.NewDocumentUseCase(uc, fakeGenerator{}, archive, nil)

	_, _, err := docs.InvoicePDF(context.Background(), q.ID, dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, archive.keys)

	_, err = uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)

	_, filename, err := docs.InvoicePDF(context.Background(), q.ID, dec("200"))
	require.NoError(t, err)
	assert.Equal(t, "facture_20250307001.pdf", filename)
	assert.Equal(t, []string{"factures/facture_20250307001.pdf"}, archive.keys)
}
